package definepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyModule(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		lang    string
		wantErr bool
	}{
		{"object export", "export default { name: 'a' }", "", false},
		{"jsx in javascript", "export default { render: () => <div/> }", "js", false},
		{"typescript", "export default { n: 1 as number }", "ts", false},
		{"tsx", "export default { c: <A<string>/> }", "tsx", false},
		{"dangling brace", "export default { name: 'a' ", "", true},
		{"types in javascript", "export default { n: 1 as number }", "js", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyModule(tt.code, tt.lang, "Page.vue")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOutput)

			var verr *VerifyError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Messages)
			assert.Contains(t, err.Error(), "[Page.vue]")
		})
	}
}
