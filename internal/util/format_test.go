package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	require.Equal(t, "Sat, Jun 14 2025", FormatDate("2025-06-14"))
	require.Equal(t, "TBA", FormatDate(" "))
	require.Equal(t, "soon", FormatDate("soon"))
}

func TestFormatDateRelative(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		date string
		want string
	}{
		{"2025-06-09", "Past"},
		{"2025-06-10", "Today"},
		{"2025-06-11", "Tomorrow"},
		{"2025-06-14", "in 4d"},
		{"2025-07-04", "Jul 04"},
		{"2026-01-15", "Jan 15 '26"},
		{"", "TBA"},
		{"later", "later"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			require.Equal(t, tt.want, FormatDateRelative(tt.date, now))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "Free", FormatPrice(""))
	require.Equal(t, "Free", FormatPrice("free"))
	require.Equal(t, "$45", FormatPrice(" $45 "))
}

func TestPluralize(t *testing.T) {
	require.Equal(t, "1 event", Pluralize(1, "event", "events"))
	require.Equal(t, "0 events", Pluralize(0, "event", "events"))
}

func TestParseEventDateInput(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-06-14", want: "2025-06-14"},
		{in: "June 14, 2025", want: "2025-06-14"},
		{in: "Jun 14, 2025", want: "2025-06-14"},
		{in: "6/14/2025", want: "2025-06-14"},
		{in: "", wantErr: true},
		{in: "2025-13-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEventDateInput(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("a@x.com"))
	require.Error(t, ValidateEmail(""))
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail("A <a@x.com>"))
}

func TestValidateURL(t *testing.T) {
	require.NoError(t, ValidateURL(""))
	require.NoError(t, ValidateURL("https://example.com/tickets"))
	require.Error(t, ValidateURL("example.com"))
	require.Error(t, ValidateURL("ftp://example.com"))
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "hello", TruncateString("hello", 10))
	require.Equal(t, "hello w...", TruncateString("hello world!", 10))
	require.Equal(t, "he", TruncateString("hello", 2))
}
