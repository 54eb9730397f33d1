package rateset

import (
	"testing"

	"reactcore/testutil"
)

func TestRateSetContractDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "rate set contract must not depend on internal packages")
}

func TestRateSetContractDoesNotImportDrivers(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.DriverImportForbidden, "rate set contract must stay driver agnostic")
}
