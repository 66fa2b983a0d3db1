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

package smoke

import (
	"context"

	"github.com/nscaledev/inventory-smoke/pkg/api"
)

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

// Client issues the API calls the checks are built on.  It is satisfied by
// *api.APIClient.
type Client interface {
	Register(ctx context.Context, credentials api.Credentials) (*api.Response, error)
	Login(ctx context.Context, credentials api.Credentials) (*api.Response, error)
	CreateProduct(ctx context.Context, token string, product api.Product) (*api.Response, error)
	UpdateQuantity(ctx context.Context, token, productID string, quantity int) (*api.Response, error)
	ListProducts(ctx context.Context, token string) (*api.Response, error)
}

var _ Client = (*api.APIClient)(nil)
