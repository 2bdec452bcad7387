//go:build integration
// +build integration

package es

import (
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/searchfluent/elastic-data-api/dsl"
)

// Requires a running cluster; point ELASTIC_URL at it and run with
// -tags integration.
func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client integration suite")
}

var _ = Describe("Client", func() {
	var client *Client

	BeforeEach(func() {
		url := os.Getenv("ELASTIC_URL")
		if url == "" {
			Skip("ELASTIC_URL is not set")
		}
		session := NewSession([]string{url}, 10*time.Second, testLogger())
		client = NewClient(session, 7, testLogger())
	})

	It("searches all indexes with an empty query", func() {
		result, err := client.Search(dsl.NewQuery().Limit(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Total()).To(BeNumerically(">=", 0))
	})

	It("returns zero rows for a filter matching nothing", func() {
		query := dsl.NewQuery().Where(dsl.In("no_such_field"))
		result, err := client.Search(query)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Empty()).To(BeTrue())
	})

	It("treats a missing document as no rows", func() {
		document, err := client.Get("no_such_index", "", "1")
		Expect(err).NotTo(HaveOccurred())
		Expect(document).To(BeNil())
	})
})
