package pond_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPond(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pond Suite")
}
