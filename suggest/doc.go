// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package suggest adapts an external gift idea API behind the Provider
interface.

The adapter is presentation glue: draws never depend on it, and a call
never fails observably. Missing configuration, HTTP errors, bad JSON,
and empty results all degrade to FallbackIdeas. Concurrent lookups for
the same recipient name are collapsed into a single upstream request
with singleflight.
*/
package suggest
