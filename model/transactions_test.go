package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	t.Run("income", func(t *testing.T) {
		kind, err := ParseKind("income")
		assert.NoError(t, err)
		assert.Equal(t, KindIncome, kind)
	})
	t.Run("expense", func(t *testing.T) {
		kind, err := ParseKind("expense")
		assert.NoError(t, err)
		assert.Equal(t, KindExpense, kind)
	})
	t.Run("anything else is rejected", func(t *testing.T) {
		for _, s := range []string{"transfer", "", "Income", "INCOME", "expenses"} {
			_, err := ParseKind(s)
			assert.Error(t, err, s)
		}
	})
}

func TestDateJSON(t *testing.T) {
	d := Date{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}

	b, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(b))

	var back Date
	assert.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"02.01.2024"`), &back))
}

func TestDateScan(t *testing.T) {
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	var d Date
	assert.NoError(t, d.Scan(want))
	assert.True(t, d.Equal(want))

	assert.NoError(t, d.Scan([]byte("2024-01-02")))
	assert.True(t, d.Equal(want))

	assert.NoError(t, d.Scan("2024-01-02"))
	assert.True(t, d.Equal(want))

	assert.Error(t, d.Scan(42))
}
