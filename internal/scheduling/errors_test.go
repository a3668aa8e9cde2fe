package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_MergeAndErr(t *testing.T) {
	errs := FieldErrors{}
	assert.NoError(t, errs.Err("nothing failed"))

	errs.Add(FieldName, CodeRequiredField)
	errs.Merge(FieldErrors{
		FieldName:        {string(CodeRequiredField), string(CodeNameTooLong)},
		FieldMaxStudents: {string(CodeCapacityExceeded)},
	})

	err := errs.Err("pattern is invalid")
	require.Error(t, err)

	vErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"requiredField", "nameTooLong"}, vErr.Fields[FieldName])
	assert.True(t, vErr.HasCode(CodeCapacityExceeded))
	assert.Equal(t, "capacityExceeded", vErr.FirstCode())
}
