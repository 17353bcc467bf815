package leads

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"ares-site-service/internal/domain"
)

type fakeRecorder struct {
	contacts     []domain.Lead
	appointments []domain.Lead
	newsletter   []string
	err          error
}

func (r *fakeRecorder) InsertContact(_ context.Context, lead domain.Lead) error {
	if r.err != nil {
		return r.err
	}
	r.contacts = append(r.contacts, lead)
	return nil
}

func (r *fakeRecorder) InsertAppointment(_ context.Context, lead domain.Lead) error {
	if r.err != nil {
		return r.err
	}
	r.appointments = append(r.appointments, lead)
	return nil
}

func (r *fakeRecorder) InsertNewsletter(_ context.Context, email string) error {
	if r.err != nil {
		return r.err
	}
	r.newsletter = append(r.newsletter, email)
	return nil
}

type fakeRelay struct {
	pageID string
	err    error
	last   domain.Lead
	calls  int
}

func (r *fakeRelay) CreateLead(_ context.Context, lead domain.Lead) (string, error) {
	r.calls++
	r.last = lead
	if r.err != nil {
		return "", r.err
	}
	return r.pageID, nil
}

func TestSubmitContact(t *testing.T) {
	recorder := &fakeRecorder{}
	relay := &fakeRelay{pageID: "page-1"}
	svc := NewService(recorder, relay, zap.NewNop())

	pageID, err := svc.Submit(context.Background(), domain.Lead{
		Kind:    domain.LeadContact,
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if pageID != "page-1" {
		t.Fatalf("expected relay page id, got %q", pageID)
	}
	if len(recorder.contacts) != 1 {
		t.Fatalf("contact not recorded: %+v", recorder)
	}
	if relay.last.Name != "Ada" {
		t.Fatalf("relay received %+v", relay.last)
	}
}

func TestSubmitValidation(t *testing.T) {
	relay := &fakeRelay{pageID: "page-1"}
	svc := NewService(nil, relay, zap.NewNop())

	cases := []domain.Lead{
		{Kind: domain.LeadContact, Email: "a@b.com"},           // missing name
		{Kind: domain.LeadContact, Name: "A"},                  // missing email
		{Kind: domain.LeadContact, Name: "   ", Email: "a@b"},  // whitespace name
		{Kind: domain.LeadContact, Name: "<b></b>", Email: "a"}, // tags-only name
	}
	for _, lead := range cases {
		if _, err := svc.Submit(context.Background(), lead); !errors.Is(err, domain.ErrMissingLeadFields) {
			t.Fatalf("lead %+v: expected ErrMissingLeadFields, got %v", lead, err)
		}
	}
	if relay.calls != 0 {
		t.Fatalf("invalid leads must not reach the relay, calls=%d", relay.calls)
	}
}

func TestSubmitSanitizes(t *testing.T) {
	relay := &fakeRelay{pageID: "p"}
	svc := NewService(nil, relay, zap.NewNop())

	_, err := svc.Submit(context.Background(), domain.Lead{
		Kind:    domain.LeadContact,
		Name:    "  <script>alert(1)</script>Ada  ",
		Email:   "ada@example.com",
		Message: "see <b>bold</b> text",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if relay.last.Name != "Ada" {
		t.Fatalf("name not sanitized: %q", relay.last.Name)
	}
	if relay.last.Message != "see bold text" {
		t.Fatalf("message not sanitized: %q", relay.last.Message)
	}
}

func TestSubmitAppointmentSynthesizesMessage(t *testing.T) {
	recorder := &fakeRecorder{}
	relay := &fakeRelay{pageID: "p"}
	svc := NewService(recorder, relay, zap.NewNop())

	_, err := svc.Submit(context.Background(), domain.Lead{
		Kind:          domain.LeadAppointment,
		Name:          "Ada",
		Email:         "ada@example.com",
		Service:       "Compliance Assessment",
		Date:          "2026-09-15",
		PreferredTime: "10:00",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := "Appointment request for Compliance Assessment on 2026-09-15 at 10:00"
	if relay.last.Message != want {
		t.Fatalf("synthesized message %q, want %q", relay.last.Message, want)
	}
	if len(recorder.appointments) != 1 || len(recorder.contacts) != 0 {
		t.Fatalf("appointment routed wrong: %+v", recorder)
	}
}

func TestSubmitRecorderFailureIsBestEffort(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("db down")}
	relay := &fakeRelay{pageID: "p"}
	svc := NewService(recorder, relay, zap.NewNop())

	pageID, err := svc.Submit(context.Background(), domain.Lead{
		Kind: domain.LeadContact, Name: "Ada", Email: "a@b.com",
	})
	if err != nil {
		t.Fatalf("recorder failure must not fail the submission: %v", err)
	}
	if pageID != "p" {
		t.Fatalf("expected relay result, got %q", pageID)
	}
}

func TestSubmitRelayFailure(t *testing.T) {
	relayErr := errors.New("notion unavailable")
	svc := NewService(&fakeRecorder{}, &fakeRelay{err: relayErr}, zap.NewNop())

	_, err := svc.Submit(context.Background(), domain.Lead{
		Kind: domain.LeadContact, Name: "Ada", Email: "a@b.com",
	})
	if !errors.Is(err, relayErr) {
		t.Fatalf("expected relay error, got %v", err)
	}
}

func TestSubscribeNewsletter(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := NewService(recorder, &fakeRelay{}, zap.NewNop())

	if err := svc.SubscribeNewsletter(context.Background(), "  ada@example.com  "); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if len(recorder.newsletter) != 1 || recorder.newsletter[0] != "ada@example.com" {
		t.Fatalf("newsletter not recorded: %+v", recorder.newsletter)
	}

	if err := svc.SubscribeNewsletter(context.Background(), "   "); !errors.Is(err, domain.ErrMissingLeadFields) {
		t.Fatalf("blank email: expected ErrMissingLeadFields, got %v", err)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  plain  ", "plain"},
		{"<script>alert('x')</script>hello", "hello"},
		{"<SCRIPT src=x>\npayload\n</SCRIPT>after", "after"},
		{"a <b>bold</b> move", "a bold move"},
		{"stray < bracket", "stray < bracket"},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("a", maxFieldLen+50)
	if got := Sanitize(long); len(got) != maxFieldLen {
		t.Fatalf("expected cap at %d, got %d", maxFieldLen, len(got))
	}
}
