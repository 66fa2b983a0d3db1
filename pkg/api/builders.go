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

package api

// SampleProductName is the name the listing check searches for.
const SampleProductName = "Phone"

// ProductPayloadBuilder builds product payloads for testing.
type ProductPayloadBuilder struct {
	payload Product
}

// NewProductPayload creates a new product payload builder populated with the
// sample product.
func NewProductPayload() *ProductPayloadBuilder {
	return &ProductPayloadBuilder{
		payload: Product{
			Name:        SampleProductName,
			Type:        "Electronics",
			SKU:         "PHN-001",
			ImageURL:    "https://example.com/phone.jpg",
			Description: "Latest Phone",
			Quantity:    5,
			Price:       999.99,
		},
	}
}

// SampleProduct is the fixed product every run creates.
func SampleProduct() Product {
	return NewProductPayload().Build()
}

// WithName sets the product name.
func (b *ProductPayloadBuilder) WithName(name string) *ProductPayloadBuilder {
	b.payload.Name = name

	return b
}

// WithSKU sets the stock keeping unit.
func (b *ProductPayloadBuilder) WithSKU(sku string) *ProductPayloadBuilder {
	b.payload.SKU = sku

	return b
}

// WithQuantity sets the initial stock level.
func (b *ProductPayloadBuilder) WithQuantity(quantity int) *ProductPayloadBuilder {
	b.payload.Quantity = quantity

	return b
}

// WithPrice sets the unit price.
func (b *ProductPayloadBuilder) WithPrice(price float64) *ProductPayloadBuilder {
	b.payload.Price = price

	return b
}

// Build returns the completed product payload.
func (b *ProductPayloadBuilder) Build() Product {
	return b.payload
}
