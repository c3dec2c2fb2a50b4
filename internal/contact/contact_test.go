package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Contact {
	return []Contact{
		{ID: "1", Name: "Ann", Email: "ann@example.com", Phone: "111"},
		{ID: "2", Name: "Bob", Email: "bob@example.com", Phone: "222"},
		{ID: "3", Name: "Joanna", Email: "jo@example.com", Phone: "333"},
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	got := Filter(sample()[:2], "an")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = Filter(sample(), "AN")
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestFilter_EmptyQueryReturnsCopy(t *testing.T) {
	list := sample()
	got := Filter(list, "")
	assert.Equal(t, list, got)

	got[0].Name = "changed"
	assert.Equal(t, "Ann", list[0].Name, "filter must not alias its input")
}

func TestFilter_NoMatchIsEmptyNotNil(t *testing.T) {
	got := Filter(sample(), "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRemove(t *testing.T) {
	list := sample()

	got := Remove(list, "2")
	assert.Len(t, got, len(list)-1)
	_, found := Find(got, "2")
	assert.False(t, found)

	got = Remove(list, "missing")
	assert.Equal(t, list, got)
}

func TestMerge_OnlyNameChanges(t *testing.T) {
	list := sample()
	name := "New"

	got := Merge(list, "2", Fields{Name: &name})

	require.Len(t, got, len(list))
	assert.Equal(t, Contact{ID: "2", Name: "New", Email: "bob@example.com", Phone: "222"}, got[1])
	assert.Equal(t, list[0], got[0])
	assert.Equal(t, list[2], got[2])
	assert.Equal(t, "Bob", list[1].Name, "merge must not mutate its input")
}

func TestMerge_UnknownIDIsNoop(t *testing.T) {
	list := sample()
	got := Merge(list, "nope", AllFields("x", "x@y.z", "1"))
	assert.Equal(t, list, got)
}

func TestAllFields(t *testing.T) {
	c := AllFields("Cid", "cid@example.com", "+44").Apply(Contact{ID: "9", Name: "old"})
	assert.Equal(t, Contact{ID: "9", Name: "Cid", Email: "cid@example.com", Phone: "+44"}, c)
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.org", true},
		{"bad-email", false},
		{"a@b", false},
		{"a b@c.com", false},
		{"@b.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), "ValidEmail(%q)", tt.in)
	}
}

func TestPhoneRulesDifferBetweenCreateAndEdit(t *testing.T) {
	assert.True(t, ValidCreatePhone("12345"))
	assert.True(t, ValidEditPhone("12345"))

	assert.False(t, ValidCreatePhone("+123"))
	assert.True(t, ValidEditPhone("+123"))

	assert.False(t, ValidCreatePhone("555-0101"))
	assert.False(t, ValidEditPhone("555-0101"))
	assert.False(t, ValidCreatePhone(""))
	assert.False(t, ValidEditPhone(""))
}

func TestValidateCreate(t *testing.T) {
	require.NoError(t, ValidateCreate("Cid", "a@b.com", "12345"))

	err := ValidateCreate("Cid", "a@b.com", "+123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Name)
	assert.False(t, verr.Email)
	assert.True(t, verr.Phone)
	assert.Equal(t, "Please enter valid email and phone number.", err.Error())
}

func TestValidateEdit(t *testing.T) {
	require.NoError(t, ValidateEdit("Cid", "a@b.com", "+123"))

	err := ValidateEdit("Cid", "bad-email", "+123")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Email)
	assert.False(t, verr.Phone)
}

func ids(list []Contact) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func TestValidate_BlankName(t *testing.T) {
	err := ValidateCreate("  ", "a@b.com", "123")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Name)
	assert.Equal(t, "Please enter a name.", err.Error())

	assert.ErrorIs(t, ValidateEdit("", "bad", "123"), ErrInvalid)
}
