package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		result   string
		expected Category
	}{
		{"tesSUCCESS", CategorySuccess},
		{"tecUNFUNDED_PAYMENT", CategoryClaimed},
		{"tecNO_DST_INSUF_XRP", CategoryClaimed},
		{"tefPAST_SEQ", CategoryFailure},
		{"telINSUF_FEE_P", CategoryLocal},
		{"temBAD_AMOUNT", CategoryMalformed},
		{"terQUEUED", CategoryRetry},
		{"terPRE_SEQ", CategoryRetry},
		{"", CategoryUnknown},
		{"xx", CategoryUnknown},
		{"abcDEF", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryOf(tt.result))
		})
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "tec", CategoryClaimed.String())
	assert.Equal(t, "ter", CategoryRetry.String())
	assert.Equal(t, "unknown", Category(42).String())
}

func TestProvisionallyAccepted(t *testing.T) {
	assert.True(t, ProvisionallyAccepted("tesSUCCESS"))
	assert.True(t, ProvisionallyAccepted("terQUEUED"))
	assert.False(t, ProvisionallyAccepted("terPRE_SEQ"))
	assert.False(t, ProvisionallyAccepted("tecUNFUNDED_PAYMENT"))
	assert.False(t, ProvisionallyAccepted("temBAD_SEQUENCE"))
}
