// Package app provides the service container for schemacheck.
//
// An App bundles the configuration with the loader, engine, fixture locator
// and optional run history built from it. Commands construct one per
// invocation; tests inject their own services through the With* options.
package app
