package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("theme.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "theme.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "theme.yaml:12")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("surfaces[0].kind", "unsupported surface kind", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "surfaces[0].kind", validationErr.Field)
	require.Contains(t, validationErr.Message, "unsupported surface kind")
}

func TestInvalidAttributeValueErrorNamesSlot(t *testing.T) {
	t.Parallel()

	err := NewInvalidAttributeValueError("link", "weight", "heavyish", "unknown weight")

	var attrErr *InvalidAttributeValueError
	require.ErrorAs(t, err, &attrErr)
	require.Equal(t, "weight", attrErr.Attribute)
	require.Equal(t, "invalid attribute error: link :weight heavyish: unknown weight", err.Error())
}

func TestInheritanceCycleErrorCopiesPath(t *testing.T) {
	t.Parallel()

	path := []string{"a", "b", "a"}
	err := NewInheritanceCycleError("a", path)
	path[0] = "mutated"

	var cycleErr *InheritanceCycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Equal(t, []string{"a", "b", "a"}, cycleErr.Path)
	require.Contains(t, err.Error(), "inheritance cycle error: a")
}

func TestNilErrorsRenderEmpty(t *testing.T) {
	t.Parallel()

	var (
		unknown *UnknownStyleError
		alias   *AliasCycleError
		depth   *RecursionLimitError
		ref     *InvalidReferenceError
	)
	require.Empty(t, unknown.Error())
	require.Empty(t, alias.Error())
	require.Empty(t, depth.Error())
	require.Empty(t, ref.Error())
}

func TestRecursionLimitErrorIncludesDepth(t *testing.T) {
	t.Parallel()

	err := NewRecursionLimitError("deep", 201)
	require.Equal(t, "recursion limit error: deep: depth 201", err.Error())
}
