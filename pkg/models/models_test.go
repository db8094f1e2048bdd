package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-03-01")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2023, time.March, 1), d)
	assert.Equal(t, "2023-03-01", d.String())

	_, err = ParseDate("01/03/2023")
	assert.Error(t, err)
	_, err = ParseDate("2023-3-1")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		When Date `json:"when"`
	}

	out, err := json.Marshal(payload{When: NewDate(2023, time.March, 1)})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"when":"2023-03-01"}`, string(out))

	var in payload
	assert.NoError(t, json.Unmarshal([]byte(`{"when":"2023-03-01"}`), &in))
	assert.Equal(t, NewDate(2023, time.March, 1), in.When)

	assert.Error(t, json.Unmarshal([]byte(`{"when":"yesterday"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"when":20230301}`), &in))
}

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"LOW", "MEDIUM", "HIGH"} {
		p, err := ParsePriority(valid)
		assert.NoError(t, err)
		assert.Equal(t, Priority(valid), p)
	}
	_, err := ParsePriority("URGENT")
	assert.Error(t, err)
	_, err = ParsePriority("low")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "LATE"} {
		s, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, Status(valid), s)
	}
	_, err := ParseStatus("DONE")
	assert.Error(t, err)
}
