package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// parseNumeric converts a numeric column selected as ::text into a decimal.
// An empty string (NULL coalesced away) maps to zero.
func parseNumeric(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// textOrNil converts a nullable text column to a *string
func textOrNil(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// textFromPtr converts a *string to a nullable text parameter
func textFromPtr(s *string) pgtype.Text {
	var t pgtype.Text
	if s != nil {
		t.String = *s
		t.Valid = true
	}
	return t
}

// int4FromPtr converts a *int32 to a nullable int parameter
func int4FromPtr(v *int32) pgtype.Int4 {
	var i pgtype.Int4
	if v != nil {
		i.Int32 = *v
		i.Valid = true
	}
	return i
}
