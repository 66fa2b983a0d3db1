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

// Package smoke runs the inventory API smoke checks.
//
// Five checks run in a fixed order: register, login, create product, update
// quantity and list products.  Later checks depend on state produced by
// earlier ones, the access token from login and the product ID from create.
// When either is missing the run stops with a skip notice rather than running
// checks that cannot succeed.  Each check decides pass or fail on its own, and
// failures are only ever visible in the printed report, the runner itself
// fails only when the API cannot be reached at all.
package smoke
