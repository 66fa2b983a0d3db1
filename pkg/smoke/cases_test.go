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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package smoke_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/nscaledev/inventory-smoke/pkg/api"
	"github.com/nscaledev/inventory-smoke/pkg/report"
	"github.com/nscaledev/inventory-smoke/pkg/smoke"
	"github.com/nscaledev/inventory-smoke/pkg/smoke/mock"
)

func response(status int, body string) *api.Response {
	return &api.Response{
		StatusCode: status,
		Body:       []byte(body),
	}
}

var errConnectionRefused = errors.New("connection refused")

var _ = Describe("Checks", func() {
	var (
		ctx         context.Context
		client      *mock.MockClient
		credentials api.Credentials
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = mock.NewMockClient(gomock.NewController(GinkgoT()))
		credentials = api.DefaultConfig().Credentials()
	})

	Describe("Register", func() {
		DescribeTable("accepts new and existing accounts only",
			func(status int, passed bool) {
				client.EXPECT().Register(ctx, credentials).Return(response(status, `{"error":"x"}`), nil)

				outcome, err := smoke.Register(ctx, client, credentials)
				Expect(err).NotTo(HaveOccurred())
				Expect(outcome.Name).To(Equal(smoke.RegisterCheck))
				Expect(outcome.Passed).To(Equal(passed))
				Expect(*outcome.Expected).To(Equal("201 or 409"))
				Expect(outcome.Actual).To(HaveValue(Equal(strconv.Itoa(status))))
				Expect(*outcome.Request).To(ContainSubstring(`"username":"puja"`))
			},
			Entry("created", http.StatusCreated, true),
			Entry("conflict", http.StatusConflict, true),
			Entry("ok", http.StatusOK, false),
			Entry("bad request", http.StatusBadRequest, false),
			Entry("server error", http.StatusInternalServerError, false),
		)

		It("propagates transport failures", func() {
			client.EXPECT().Register(ctx, credentials).Return(nil, errConnectionRefused)

			_, err := smoke.Register(ctx, client, credentials)
			Expect(err).To(MatchError(errConnectionRefused))
		})
	})

	Describe("Login", func() {
		DescribeTable("requires success and a token",
			func(status int, body string, passed bool, token string) {
				client.EXPECT().Login(ctx, credentials).Return(response(status, body), nil)

				outcome, gotToken, err := smoke.Login(ctx, client, credentials)
				Expect(err).NotTo(HaveOccurred())
				Expect(outcome.Name).To(Equal(smoke.LoginCheck))
				Expect(outcome.Passed).To(Equal(passed))
				Expect(gotToken).To(Equal(token))
			},
			Entry("token present", http.StatusOK, `{"access_token":"abc"}`, true, "abc"),
			Entry("non-string token", http.StatusOK, `{"access_token":123}`, true, "123"),
			Entry("empty token", http.StatusOK, `{"access_token":""}`, true, ""),
			Entry("null token", http.StatusOK, `{"access_token":null}`, false, ""),
			Entry("missing token", http.StatusOK, `{"message":"hi"}`, false, ""),
			Entry("invalid JSON", http.StatusOK, `<html>`, false, ""),
			Entry("null body", http.StatusOK, `null`, false, ""),
			Entry("list body", http.StatusOK, `["abc"]`, false, ""),
			Entry("unauthorized", http.StatusUnauthorized, `{"access_token":"abc"}`, false, ""),
			Entry("server error", http.StatusInternalServerError, `{"error":"No User Found"}`, false, ""),
		)

		It("reports the status and body on failure", func() {
			client.EXPECT().Login(ctx, credentials).Return(response(http.StatusUnauthorized, `{"error":"denied"}`), nil)

			outcome, _, err := smoke.Login(ctx, client, credentials)
			Expect(err).NotTo(HaveOccurred())
			Expect(*outcome.Actual).To(Equal("401"))
			Expect(*outcome.ResponseBody).To(Equal(`{"error":"denied"}`))
		})
	})

	Describe("CreateProduct", func() {
		var product api.Product

		BeforeEach(func() {
			product = api.SampleProduct()
		})

		DescribeTable("passes on status alone",
			func(status int, body string, passed bool, productID string) {
				client.EXPECT().CreateProduct(ctx, "tok", product).Return(response(status, body), nil)

				outcome, gotID, err := smoke.CreateProduct(ctx, client, "tok", product)
				Expect(err).NotTo(HaveOccurred())
				Expect(outcome.Name).To(Equal(smoke.CreateProductCheck))
				Expect(outcome.Passed).To(Equal(passed))
				Expect(gotID).To(Equal(productID))
			},
			Entry("created", http.StatusCreated, `{"message":"Product added successfully","product_id":"p1"}`, true, "p1"),
			Entry("created with unparsable body", http.StatusCreated, `not json`, true, ""),
			Entry("created without ID", http.StatusCreated, `{"message":"ok"}`, true, ""),
			Entry("ok", http.StatusOK, `{"product_id":"p1"}`, false, ""),
			Entry("unauthorized", http.StatusUnauthorized, `{"error":"the token is invalid"}`, false, ""),
		)

		It("reports the payload and body on failure", func() {
			client.EXPECT().CreateProduct(ctx, "tok", product).Return(response(http.StatusBadRequest, `{"error":"bad"}`), nil)

			outcome, _, err := smoke.CreateProduct(ctx, client, "tok", product)
			Expect(err).NotTo(HaveOccurred())
			Expect(*outcome.Request).To(ContainSubstring(`"name":"Phone"`))
			Expect(*outcome.Request).To(ContainSubstring(`"image_url":"https://example.com/phone.jpg"`))
			Expect(*outcome.Expected).To(Equal("201"))
			Expect(*outcome.Actual).To(Equal("400"))
			Expect(*outcome.ResponseBody).To(Equal(`{"error":"bad"}`))
		})
	})

	Describe("UpdateQuantity", func() {
		DescribeTable("passes on status alone",
			func(status int, body string, passed bool, info string) {
				client.EXPECT().UpdateQuantity(ctx, "tok", "p1", 15).Return(response(status, body), nil)

				outcome, err := smoke.UpdateQuantity(ctx, client, "tok", "p1", 15)
				Expect(err).NotTo(HaveOccurred())
				Expect(outcome.Name).To(Equal(smoke.UpdateQuantityCheck))
				Expect(outcome.Passed).To(Equal(passed))

				if passed {
					Expect(outcome.Info).To(HaveValue(Equal(info)))
				}
			},
			Entry("echoed", http.StatusOK, `{"_id":"p1","name":"Phone","quantity":15}`, true, "Updated quantity = 15"),
			Entry("not echoed", http.StatusOK, `{}`, true, "Updated quantity = unknown"),
			Entry("invalid JSON", http.StatusOK, `ok`, true, "response body is not valid JSON"),
			Entry("empty body", http.StatusOK, ``, true, "response body is not valid JSON"),
			Entry("not found", http.StatusNotFound, `{"error":"Product not found or update failed"}`, false, ""),
			Entry("bad request", http.StatusBadRequest, `{"error":"Invalid product ID"}`, false, ""),
		)

		It("reports the payload on failure", func() {
			client.EXPECT().UpdateQuantity(ctx, "tok", "p1", 15).Return(response(http.StatusNotFound, `{}`), nil)

			outcome, err := smoke.UpdateQuantity(ctx, client, "tok", "p1", 15)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Request).To(HaveValue(Equal(`{"quantity":15}`)))
			Expect(outcome.Expected).To(HaveValue(Equal("200")))
			Expect(outcome.Actual).To(HaveValue(Equal("404")))
		})
	})

	Describe("ListProducts", func() {
		list := func(status int, body string, expected int) report.Outcome {
			client.EXPECT().ListProducts(ctx, "tok").Return(response(status, body), nil)

			outcome, err := smoke.ListProducts(ctx, client, "tok", api.SampleProductName, expected)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Name).To(Equal(smoke.ListProductsCheck))

			return outcome
		}

		It("fails on an unexpected status", func() {
			outcome := list(http.StatusInternalServerError, `"something went wrong"`, 15)
			Expect(outcome.Passed).To(BeFalse())
			Expect(outcome.Expected).To(HaveValue(Equal("200")))
			Expect(outcome.Actual).To(HaveValue(Equal("500")))
			Expect(outcome.Request).To(BeNil())
		})

		DescribeTable("fails when the body is not a list",
			func(body string) {
				outcome := list(http.StatusOK, body, 15)
				Expect(outcome.Passed).To(BeFalse())
				Expect(outcome.Expected).To(HaveValue(Equal("valid JSON list")))
				Expect(outcome.Actual).To(HaveValue(Equal("Invalid JSON")))
				Expect(outcome.ResponseBody).To(HaveValue(Equal(body)))
			},
			Entry("garbage", `[{`),
			Entry("object", `{"name":"Phone","quantity":15}`),
			Entry("null", `null`),
			Entry("list of scalars", `[1,2]`),
		)

		DescribeTable("fails when the product is missing, whatever the quantities",
			func(body string) {
				outcome := list(http.StatusOK, body, 15)
				Expect(outcome.Passed).To(BeFalse())
				Expect(outcome.Message).To(HaveValue(ContainSubstring("Could not find product")))
				Expect(outcome.Expected).To(BeNil())
			},
			Entry("empty", `[]`),
			Entry("other products", `[{"name":"Laptop","quantity":15},{"name":"Tablet","quantity":15}]`),
			Entry("different case", `[{"name":"phone","quantity":15}]`),
			Entry("non-string name", `[{"name":1,"quantity":15}]`),
		)

		DescribeTable("compares the first match with the expected quantity",
			func(body string, expected int, passed bool, actual string) {
				outcome := list(http.StatusOK, body, expected)
				Expect(outcome.Passed).To(Equal(passed))

				if passed {
					Expect(outcome.Info).To(HaveValue(Equal("Quantity = " + actual)))
					return
				}

				Expect(outcome.Expected).To(HaveValue(Equal(strconv.Itoa(expected))))
				Expect(outcome.Actual).To(HaveValue(Equal(actual)))
			},
			Entry("equal", `[{"name":"Laptop","quantity":1},{"name":"Phone","quantity":15}]`, 15, true, "15"),
			Entry("unequal", `[{"name":"Phone","quantity":5}]`, 15, false, "5"),
			Entry("first match wins", `[{"name":"Phone","quantity":15},{"name":"Phone","quantity":5}]`, 15, true, "15"),
			Entry("first match loses", `[{"name":"Phone","quantity":5},{"name":"Phone","quantity":15}]`, 15, false, "5"),
			Entry("missing quantity", `[{"name":"Phone"}]`, 15, false, "null"),
			Entry("string quantity", `[{"name":"Phone","quantity":"15"}]`, 15, false, "15"),
			Entry("fractional quantity", `[{"name":"Phone","quantity":15.5}]`, 15, false, "15.5"),
		)

		It("propagates transport failures", func() {
			client.EXPECT().ListProducts(ctx, "tok").Return(nil, errConnectionRefused)

			_, err := smoke.ListProducts(ctx, client, "tok", api.SampleProductName, 15)
			Expect(err).To(MatchError(errConnectionRefused))
		})
	})
})
