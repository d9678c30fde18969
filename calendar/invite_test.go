package calendar

import (
	"strings"
	"testing"
	"time"
)

func sampleInvite() Invite {
	return Invite{
		BookingID:      "b-42",
		Title:          "Personal",
		Coach:          "Mia",
		Start:          time.Date(2030, time.March, 4, 8, 0, 0, 0, time.UTC),
		End:            time.Date(2030, time.March, 4, 9, 0, 0, 0, time.UTC),
		Location:       "Pgym Studio",
		AttendeeName:   "Lena",
		AttendeeEmail:  "lena@example.com",
		OrganizerEmail: "hello@pgym.ch",
	}
}

func TestInviteTextMentionsEveryDetail(t *testing.T) {
	text := sampleInvite().Text()
	for _, want := range []string{"Hi Lena", "Personal", "Mon 04 Mar 2030, 08:00-09:00", "with Mia", "Location: Pgym Studio"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q, got:\n%s", want, text)
		}
	}
}

func TestInviteTextOmitsMissingCoachAndLocation(t *testing.T) {
	inv := sampleInvite()
	inv.Coach = ""
	inv.Location = ""
	text := inv.Text()
	if strings.Contains(text, " with ") || strings.Contains(text, "Location:") {
		t.Fatalf("unexpected optional fields in:\n%s", text)
	}
}

func TestInviteICSIsARequestWithAttendee(t *testing.T) {
	out := sampleInvite().ICS(time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC))
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"UID:b-42@pgym",
		"DTSTART:20300304T080000Z",
		"DTEND:20300304T090000Z",
		"SUMMARY:Personal with Mia",
		"LOCATION:Pgym Studio",
		"ATTENDEE;",
		"ORGANIZER;CN=Pgym:mailto:hello@pgym.ch",
		"END:VEVENT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected ICS to contain %q, got:\n%s", want, out)
		}
	}
}

func TestInviteICSConvertsLocalTimesToUTC(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	inv := sampleInvite()
	inv.Start = time.Date(2030, time.July, 1, 18, 0, 0, 0, zurich)
	inv.End = inv.Start.Add(time.Hour)

	out := inv.ICS(time.Now())
	if !strings.Contains(out, "DTSTART:20300701T160000Z") {
		t.Fatalf("expected summer time start at 16:00Z, got:\n%s", out)
	}
}
