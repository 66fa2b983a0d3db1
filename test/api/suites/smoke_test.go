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
package suites

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/inventory-smoke/pkg/api"
	"github.com/nscaledev/inventory-smoke/pkg/report"
	"github.com/nscaledev/inventory-smoke/pkg/smoke"
)

var _ = Describe("Inventory Smoke Test", func() {
	Context("When running the full sequence", func() {
		It("should pass every check", func() {
			var out bytes.Buffer

			result, err := smoke.New(client, report.New(&out), config, GinkgoLogr).Run(ctx)

			GinkgoWriter.Print(out.String())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.State).To(Equal(smoke.StateCompleted))
			Expect(result.Failed()).To(BeZero())
		})
	})

	Context("When managing accounts", func() {
		It("should accept registering the same account twice", func() {
			// Given: An account that may or may not exist
			first, err := smoke.Register(ctx, client, config.Credentials())
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Passed).To(BeTrue())

			// When: I register it again
			second, err := smoke.Register(ctx, client, config.Credentials())
			Expect(err).NotTo(HaveOccurred())

			// Then: The server reports a conflict, which still passes
			Expect(second.Passed).To(BeTrue())
			Expect(second.Actual).To(HaveValue(Equal("409")))
		})

		It("should reject a wrong password", func() {
			credentials := api.Credentials{
				Username: config.Username,
				Password: generateTestName("wrong"),
			}

			_, err := smoke.Register(ctx, client, config.Credentials())
			Expect(err).NotTo(HaveOccurred())

			outcome, token, err := smoke.Login(ctx, client, credentials)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeFalse())
			Expect(token).To(BeEmpty())
		})
	})

	Context("When managing products", func() {
		var token string

		BeforeEach(func() {
			_, err := smoke.Register(ctx, client, config.Credentials())
			Expect(err).NotTo(HaveOccurred())

			var outcome report.Outcome

			outcome, token, err = smoke.Login(ctx, client, config.Credentials())
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeTrue())
		})

		It("should list a product with its updated quantity", func() {
			// Given: A product unique to this test
			name := generateTestName("smoke")
			product := api.NewProductPayload().
				WithName(name).
				WithSKU(name).
				WithQuantity(1).
				Build()

			outcome, productID, err := smoke.CreateProduct(ctx, client, token, product)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeTrue())
			Expect(productID).NotTo(BeEmpty())

			// When: I update its quantity
			outcome, err = smoke.UpdateQuantity(ctx, client, token, productID, 27)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeTrue())

			// Then: The listing reflects the update
			outcome, err = smoke.ListProducts(ctx, client, token, name, 27)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeTrue())
			Expect(outcome.Info).To(HaveValue(Equal("Quantity = 27")))
		})

		It("should reject requests without a valid token", func() {
			outcome, _, err := smoke.CreateProduct(ctx, client, generateTestName("token"), api.SampleProduct())
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeFalse())
			Expect(outcome.Actual).To(HaveValue(Equal("401")))
		})

		It("should reject updates to unknown products", func() {
			outcome, err := smoke.UpdateQuantity(ctx, client, token, "000000000000000000000000", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Passed).To(BeFalse())
		})
	})
})
