package schedule

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("11:30:05")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	want := TimeOfDay{Hour: 11, Minute: 30, Second: 5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.String() != "11:30:05" {
		t.Errorf("String() = %q, want %q", got.String(), "11:30:05")
	}
}

func TestTimeOfDayOn(t *testing.T) {
	d := time.Date(2022, 2, 14, 23, 59, 59, 0, time.Local)
	at := TimeOfDay{Hour: 9, Minute: 15}
	got := at.On(d, time.Local)
	want := time.Date(2022, 2, 14, 9, 15, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("On() = %s, want %s", got, want)
	}
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	orig := TimeOfDay{Hour: 11, Minute: 30}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"11:30:00"` {
		t.Errorf("marshal = %s, want %q", data, `"11:30:00"`)
	}

	var decoded TimeOfDay
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != orig {
		t.Errorf("round-trip = %+v, want %+v", decoded, orig)
	}
}

func TestTimeOfDayUnmarshalInvalid(t *testing.T) {
	var tod TimeOfDay
	for _, input := range []string{`"25:00:00"`, `"1130"`, `42`} {
		if err := json.Unmarshal([]byte(input), &tod); err == nil {
			t.Errorf("unmarshal %s: expected error", input)
		}
	}
}
