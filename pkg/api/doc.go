/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package api provides the HTTP client used to exercise the inventory API.
//
// # Separate Client Implementation
//
// The client is written by hand rather than generated from the schema in
// pkg/openapi.  Any legitimate change to the API then needs a matching change
// here, which makes API evolution explicit and reviewable.  It also gives the
// smoke checks what a generated client hides:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Direct access to HTTP status codes and raw response bodies
//   - Optional schema conformance warnings
package api
