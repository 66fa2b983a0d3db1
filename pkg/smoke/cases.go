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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nscaledev/inventory-smoke/pkg/api"
	"github.com/nscaledev/inventory-smoke/pkg/report"

	"k8s.io/utils/ptr"
)

// Check names, as printed in the report.
const (
	RegisterCheck       = "User Registration"
	LoginCheck          = "Login Test"
	CreateProductCheck  = "Add Product"
	UpdateQuantityCheck = "Update Quantity"
	ListProductsCheck   = "Get Products"
)

func status(code int) *string {
	return ptr.To(strconv.Itoa(code))
}

func requestString(payload any) *string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ptr.To(fmt.Sprint(payload))
	}

	return ptr.To(string(data))
}

func failure(name, expected string, resp *api.Response, payload any) report.Outcome {
	outcome := report.Outcome{
		Name:         name,
		Expected:     ptr.To(expected),
		Actual:       status(resp.StatusCode),
		ResponseBody: ptr.To(string(resp.Body)),
	}

	if payload != nil {
		outcome.Request = requestString(payload)
	}

	return outcome
}

// Register checks account creation.  An existing account is as good as a new
// one, so runs can be repeated against the same server.
func Register(ctx context.Context, client Client, credentials api.Credentials) (report.Outcome, error) {
	resp, err := client.Register(ctx, credentials)
	if err != nil {
		return report.Outcome{}, err
	}

	outcome := failure(RegisterCheck, "201 or 409", resp, credentials)
	outcome.Passed = resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusConflict

	return outcome, nil
}

// Login checks authentication and returns the access token.  The token is
// empty unless the check passed.
func Login(ctx context.Context, client Client, credentials api.Credentials) (report.Outcome, string, error) {
	resp, err := client.Login(ctx, credentials)
	if err != nil {
		return report.Outcome{}, "", err
	}

	outcome := failure(LoginCheck, "200 with access_token", resp, credentials)

	if resp.StatusCode != http.StatusOK {
		return outcome, "", nil
	}

	body := ParseJSON[map[string]any](resp.Body)
	if !body.OK() {
		outcome.Message = ptr.To("Response body is not valid JSON")
		return outcome, "", nil
	}

	token, ok := stringField(body.Value, "access_token")
	if !ok {
		outcome.Message = ptr.To("Response has no access_token")
		return outcome, "", nil
	}

	outcome.Passed = true

	return outcome, token, nil
}

// CreateProduct checks product creation and returns the new product's ID.
// The check passes on status alone, an unreadable body still passes but
// yields no ID.
func CreateProduct(ctx context.Context, client Client, token string, product api.Product) (report.Outcome, string, error) {
	resp, err := client.CreateProduct(ctx, token, product)
	if err != nil {
		return report.Outcome{}, "", err
	}

	if resp.StatusCode != http.StatusCreated {
		return failure(CreateProductCheck, "201", resp, product), "", nil
	}

	outcome := report.Outcome{
		Name:   CreateProductCheck,
		Passed: true,
	}

	body := ParseJSON[map[string]any](resp.Body)
	if !body.OK() {
		return outcome, "", nil
	}

	productID, _ := stringField(body.Value, "product_id")

	return outcome, productID, nil
}

// UpdateQuantity checks a stock level update.  The echoed quantity is shown
// for information only and does not affect the outcome.
func UpdateQuantity(ctx context.Context, client Client, token, productID string, quantity int) (report.Outcome, error) {
	resp, err := client.UpdateQuantity(ctx, token, productID, quantity)
	if err != nil {
		return report.Outcome{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return failure(UpdateQuantityCheck, "200", resp, api.QuantityUpdate{Quantity: quantity}), nil
	}

	outcome := report.Outcome{
		Name:   UpdateQuantityCheck,
		Passed: true,
	}

	body := ParseJSON[map[string]any](resp.Body)
	if !body.OK() {
		outcome.Info = ptr.To("response body is not valid JSON")
		return outcome, nil
	}

	updated := "unknown"

	if value, ok := body.Value["quantity"]; ok {
		updated = formatValue(value)
	}

	outcome.Info = ptr.To("Updated quantity = " + updated)

	return outcome, nil
}

// ListProducts checks that the named product is listed with the expected
// quantity.  Only the first product with the name is considered.
func ListProducts(ctx context.Context, client Client, token, name string, expected int) (report.Outcome, error) {
	resp, err := client.ListProducts(ctx, token)
	if err != nil {
		return report.Outcome{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return failure(ListProductsCheck, "200", resp, nil), nil
	}

	body := ParseJSON[[]map[string]any](resp.Body)
	if !body.OK() {
		return report.Outcome{
			Name:         ListProductsCheck,
			Expected:     ptr.To("valid JSON list"),
			Actual:       ptr.To("Invalid JSON"),
			ResponseBody: ptr.To(string(resp.Body)),
		}, nil
	}

	var matches []map[string]any

	for _, product := range body.Value {
		if productName, ok := product["name"].(string); ok && productName == name {
			matches = append(matches, product)
		}
	}

	if len(matches) == 0 {
		return report.Outcome{
			Name:    ListProductsCheck,
			Message: ptr.To(fmt.Sprintf("Could not find product named '%s'", name)),
		}, nil
	}

	quantity := matches[0]["quantity"]

	if q, ok := quantity.(float64); ok && q == float64(expected) {
		return report.Outcome{
			Name:   ListProductsCheck,
			Passed: true,
			Info:   ptr.To("Quantity = " + formatValue(quantity)),
		}, nil
	}

	return report.Outcome{
		Name:     ListProductsCheck,
		Expected: ptr.To(strconv.Itoa(expected)),
		Actual:   ptr.To(formatValue(quantity)),
		Message:  ptr.To(fmt.Sprintf("Quantity mismatch for product '%s'", name)),
	}, nil
}
