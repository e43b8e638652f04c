package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTypeReferenceError_Message(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"none", nil, "Shop.Items: unknown type Item"},
		{"single", []string{"shop.ItemConfig"}, "Shop.Items: replace Item with shop.ItemConfig"},
		{"several", []string{"a.ItemConfig", "b.ItemDTO"}, "Shop.Items: replace Item with any of a.ItemConfig, b.ItemDTO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &InvalidTypeReferenceError{UsedType: "Item", Candidates: tt.candidates, Site: "Shop.Items"}
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestCode(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("extracting: %w", err) }

	assert.Equal(t, CodeValidation, Code(wrap(&ValidationError{Schema: "X", Message: "m"})))
	assert.Equal(t, CodeNameResolution, Code(wrap(&NameResolutionError{Declaration: "X"})))
	assert.Equal(t, CodeInvalidTypeRef, Code(wrap(&InvalidTypeReferenceError{UsedType: "X"})))
	assert.Equal(t, CodeDuplicateName, Code(wrap(&DuplicateRegistrationError{Name: "X"})))
	assert.Equal(t, CodeInternal, Code(errors.New("boom")))
}

func TestDiagnostics_AddFailure(t *testing.T) {
	var d Diagnostics
	ref := &InvalidTypeReferenceError{UsedType: "Item", Candidates: []string{"shop.ItemConfig"}, Site: "Shop.Items"}
	d.AddFailure("shop.ShopConfig", fmt.Errorf("resolving: %w", ref))

	require.Len(t, d.Errors, 1)
	got := d.Errors[0]
	assert.Equal(t, CodeInvalidTypeRef, got.Code)
	assert.Equal(t, "Shop.Items", got.FieldPath)
	assert.Equal(t, []string{"shop.ItemConfig"}, got.Suggestions)
	assert.False(t, d.IsValid())

	var target *InvalidTypeReferenceError
	require.ErrorAs(t, d.Error(), &target)
	assert.Equal(t, "Item", target.UsedType)
}

func TestDiagnostics_SortAndString(t *testing.T) {
	var d Diagnostics
	d.AddError(CodeValidation, "second", "b.B", "")
	d.AddError(CodeValidation, "first", "a.A", "A.X")
	d.AddWarning(CodeUnusedDirective, "ignored", "", "")
	d.Sort()

	assert.Equal(t, "a.A", d.Errors[0].Schema)
	assert.Equal(t, "[a.A] A.X: [validation] first", d.Errors[0].String())
	assert.Equal(t, "[unused-directive] ignored", d.Warnings[0].String())
	assert.True(t, d.HasErrors())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("x", "info", "", "")
	b.AddError("y", "err", "", "")
	a.Merge(b)

	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Errors, 1)
	assert.Nil(t, (&Diagnostics{}).Error())
}
