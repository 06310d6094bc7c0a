package timestamp

import (
	"testing"
	"time"
)

// Test constants
var (
	testTime      = time.Date(2023, 1, 15, 12, 30, 45, 123000000, time.UTC)
	testTimeMs    = int64(1673785845123)
	testTimeMicro = int64(1673785845123000)
)

func TestNowMillis(t *testing.T) {
	before := time.Now().UnixMilli()
	ts := NowMillis()
	after := time.Now().UnixMilli()

	if ts < before || ts > after {
		t.Errorf("NowMillis() = %d, expected between %d and %d", ts, before, after)
	}
}

func TestNowMicros(t *testing.T) {
	before := time.Now().UnixMicro()
	ts := NowMicros()
	after := time.Now().UnixMicro()

	if ts < before || ts > after {
		t.Errorf("NowMicros() = %d, expected between %d and %d", ts, before, after)
	}
}

func TestToUnixMs(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected int64
	}{
		{
			name:     "normal time",
			input:    testTime,
			expected: testTimeMs,
		},
		{
			name:     "zero time",
			input:    time.Time{},
			expected: 0,
		},
		{
			name:     "unix epoch",
			input:    time.Unix(0, 0),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToUnixMs(tt.input)
			if result != tt.expected {
				t.Errorf("ToUnixMs(%v) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToUnixMicro(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected int64
	}{
		{
			name:     "normal time",
			input:    testTime,
			expected: testTimeMicro,
		},
		{
			name:     "sub-millisecond precision kept",
			input:    time.Date(2025, 10, 17, 23, 52, 1, 358911000, time.UTC),
			expected: 1760745121358911,
		},
		{
			name:     "zero time",
			input:    time.Time{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToUnixMicro(tt.input)
			if result != tt.expected {
				t.Errorf("ToUnixMicro(%v) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromUnixMs(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected time.Time
	}{
		{
			name:     "normal timestamp",
			input:    testTimeMs,
			expected: time.UnixMilli(testTimeMs),
		},
		{
			name:     "zero timestamp",
			input:    0,
			expected: time.Time{},
		},
		{
			name:     "negative timestamp",
			input:    -1000,
			expected: time.UnixMilli(-1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FromUnixMs(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("FromUnixMs(%d) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromUnixMicro(t *testing.T) {
	result := FromUnixMicro(testTimeMicro)
	if !result.Equal(testTime) {
		t.Errorf("FromUnixMicro(%d) = %v, expected %v", testTimeMicro, result, testTime)
	}

	if !FromUnixMicro(0).IsZero() {
		t.Error("FromUnixMicro(0) should return zero time")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{
			name:     "normal timestamp",
			input:    testTimeMs,
			expected: "2023-01-15T12:30:45Z",
		},
		{
			name:     "zero timestamp",
			input:    0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.input)
			if result != tt.expected {
				t.Errorf("Format(%d) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0) {
		t.Error("IsZero(0) should be true")
	}
	if IsZero(testTimeMs) {
		t.Error("IsZero(non-zero) should be false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   int64
		wantErr bool
	}{
		{"valid timestamp", testTimeMs, false},
		{"zero timestamp", 0, false},
		{"negative timestamp", -1, true},
		{"too far in future", 32503680000001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
