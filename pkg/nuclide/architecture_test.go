package nuclide

import (
	"testing"

	"reactcore/testutil"
)

func TestNuclideDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "nuclide catalog is a public contract")
}
