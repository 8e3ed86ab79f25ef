package contract

import "testing"

func TestParseAction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw      string
		fallback Action
		want     Action
	}{
		{"CONTINUE", ActionEnd, ActionContinue},
		{" schedule \n", ActionContinue, ActionSchedule},
		{"end", ActionContinue, ActionEnd},
		{"I think we should CONTINUE here", ActionEnd, ActionContinue},
		{"Action: END", ActionContinue, ActionEnd},
		{"dunno", ActionContinue, ActionContinue},
		{"", ActionEnd, ActionEnd},
	}

	for _, tc := range cases {
		if got := ParseAction(tc.raw, tc.fallback); got != tc.want {
			t.Errorf("ParseAction(%q, %q) = %q, want %q", tc.raw, tc.fallback, got, tc.want)
		}
	}
}

func TestParseIntent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Intent
	}{
		{"REQUEST_AVAILABILITY", IntentRequestAvailability},
		{"request availability", IntentRequestAvailability},
		{"PROPOSE_TIME", IntentProposeTime},
		{"Category: CONFIRM_BOOKING", IntentConfirmBooking},
		{"other", IntentOther},
		{"no idea", IntentOther},
		{"", IntentOther},
	}

	for _, tc := range cases {
		if got := ParseIntent(tc.raw); got != tc.want {
			t.Errorf("ParseIntent(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
