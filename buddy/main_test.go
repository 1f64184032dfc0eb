package buddy

import (
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	fmt.Println("Running buddy allocator tests.")
	os.Exit(m.Run())
}
