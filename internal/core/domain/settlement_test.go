package domain_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSettlementAsExpense_Description(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		note    string
		want    string
		wantLen int
	}{
		{name: "default from ids", from: "alice", to: "bob", want: "Settlement from alice to bob"},
		{name: "note wins", from: "alice", to: "bob", note: "Rent for March", want: "Rent for March"},
		{name: "long ids are cut to the column size", from: strings.Repeat("a", 255), to: strings.Repeat("b", 255), wantLen: domain.MaxDescriptionLength},
		{name: "cut counts runes", from: strings.Repeat("é", 150), to: strings.Repeat("ü", 150), wantLen: domain.MaxDescriptionLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.Settlement{
				SettlementID: "s1",
				FromID:       tt.from,
				ToID:         tt.to,
				Note:         tt.note,
				Amount:       domain.NewMoney(500, "USD"),
			}

			e := s.AsExpense()

			if tt.want != "" {
				assert.Equal(t, tt.want, e.Description)
			}
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantLen, utf8.RuneCountInString(e.Description))
				assert.True(t, utf8.ValidString(e.Description))
				assert.True(t, strings.HasPrefix(e.Description, "Settlement from "))
			}
			assert.True(t, e.IsSettlement)
			assert.Equal(t, tt.from, e.PayerID)
		})
	}
}
