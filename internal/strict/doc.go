// Package strict implements strict-mode checks for JSON Schema documents.
//
// A JSON Schema engine silently ignores a lot of things: misspelled keywords,
// formats it does not know, "then" without "if", "properties" on a schema
// that never says it describes an object. For a schema corpus each of those
// is almost always a bug, so Check reports them instead:
//
//   - unknown keywords for the document's draft
//   - unknown formats
//   - keywords that have no effect where they are placed
//   - type-specific keywords without a matching "type" (strict types),
//     including union types and types that contradict an enclosing schema
//   - tuples whose length is not pinned by minItems and maxItems or a
//     closing additionalItems: false (strict tuples)
//   - required properties that are never defined (strict required)
//
// The rules follow the strict mode of Ajv, the validator most public schema
// catalogs gate on, so a corpus that passes here passes there.
package strict
