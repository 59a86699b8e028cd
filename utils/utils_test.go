package utils

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var ptr *int
	var slice []byte
	var m map[string]int

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(ptr))
	assert.True(t, IsNil(slice))
	assert.True(t, IsNil(m))

	assert.False(t, IsNil(0))
	assert.False(t, IsNil(""))
	assert.False(t, IsNil([]byte{}))
}

func TestInString(t *testing.T) {
	hay := []string{"sqlite3", "mysql"}
	assert.True(t, InString(hay, "mysql"))
	assert.False(t, InString(hay, "postgres"))
	assert.False(t, InString(nil, "mysql"))
}

func TestMetricValues(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_counter"})
	counter.Add(3)

	value, err := GetCounterValue(counter)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), value)

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_gauge"})
	gauge.Inc()
	gauge.Inc()
	gauge.Dec()

	value, err = GetGaugeValue(gauge)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), value)
}

func TestNotFound(t *testing.T) {
	err := fmt.Errorf("Schema x: %w", NotFoundError)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(fmt.Errorf("other")))
	assert.False(t, IsNotFound(nil))
}
