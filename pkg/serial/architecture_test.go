package serial

import (
	"testing"

	"reactcore/testutil"
)

func TestSerialDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "envelope codec is a public contract")
	testutil.AssertNoDirectImports(t, ".", testutil.DriverImportForbidden, "envelope codec must stay storage agnostic")
}
