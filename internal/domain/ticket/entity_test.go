package ticket

import (
	"testing"

	"github.com/brandbite/brandbite-api/internal/domain/user"
)

func TestNextAllowedStatuses_Creative(t *testing.T) {
	cases := []struct {
		from Status
		want []Status
	}{
		{StatusTodo, []Status{StatusInProgress}},
		{StatusInProgress, []Status{StatusInReview}},
		{StatusInReview, []Status{StatusInProgress}},
		{StatusDone, nil},
	}

	for _, tc := range cases {
		got := NextAllowedStatuses(user.RoleCreative, tc.from)
		if len(got) != len(tc.want) {
			t.Fatalf("from %s: expected %v, got %v", tc.from, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("from %s: expected %v, got %v", tc.from, tc.want, got)
			}
		}
	}
}

func TestNextAllowedStatuses_CreativeNeverIntoDone(t *testing.T) {
	for _, from := range []Status{StatusTodo, StatusInProgress, StatusInReview, StatusDone} {
		if CanMove(user.RoleCreative, from, StatusDone) {
			t.Fatalf("creative must not move %s -> DONE", from)
		}
	}
}

func TestNextAllowedStatuses_Customer(t *testing.T) {
	if !CanMove(user.RoleCustomer, StatusInReview, StatusDone) {
		t.Fatal("customer should approve IN_REVIEW -> DONE")
	}
	if !CanMove(user.RoleCustomer, StatusInReview, StatusInProgress) {
		t.Fatal("customer should request changes IN_REVIEW -> IN_PROGRESS")
	}
	if CanMove(user.RoleCustomer, StatusTodo, StatusInProgress) {
		t.Fatal("customer must not move TODO -> IN_PROGRESS")
	}
	if CanMove(user.RoleCustomer, StatusDone, StatusInReview) {
		t.Fatal("customer must not reopen DONE")
	}
}

func TestNextAllowedStatuses_AdminOverride(t *testing.T) {
	for _, role := range []user.Role{user.RoleSiteOwner, user.RoleSiteAdmin} {
		if !CanMove(role, StatusDone, StatusInReview) {
			t.Fatalf("%s should reopen DONE -> IN_REVIEW", role)
		}
		if !CanMove(role, StatusTodo, StatusDone) {
			t.Fatalf("%s should force TODO -> DONE", role)
		}
		if CanMove(role, StatusTodo, StatusTodo) {
			t.Fatalf("%s should not move a ticket onto its own status", role)
		}
	}
}

func TestLoadScore(t *testing.T) {
	open := []Ticket{
		{Status: StatusTodo, Priority: PriorityLow},
		{Status: StatusInProgress, Priority: PriorityMedium},
		{Status: StatusInReview, Priority: PriorityHigh},
		{Status: StatusInProgress, Priority: PriorityUrgent},
	}

	// 10 * (1 + 2 + 3 + 4)
	if got := LoadScore(open); got != 100 {
		t.Fatalf("expected load score 100, got %d", got)
	}
}

func TestLoadScore_IgnoresDone(t *testing.T) {
	tickets := []Ticket{
		{Status: StatusDone, Priority: PriorityUrgent},
		{Status: StatusTodo, Priority: PriorityLow},
	}
	if got := LoadScore(tickets); got != 10 {
		t.Fatalf("expected load score 10, got %d", got)
	}
}

func TestLoadScore_Empty(t *testing.T) {
	if got := LoadScore(nil); got != 0 {
		t.Fatalf("expected load score 0, got %d", got)
	}
}

func TestPriorityWeight_UnknownDefaultsToLow(t *testing.T) {
	if got := Priority("BANANAS").Weight(); got != 1 {
		t.Fatalf("expected weight 1, got %d", got)
	}
}

func TestBuildBoard(t *testing.T) {
	tickets := []Ticket{
		{Status: StatusTodo},
		{Status: StatusInProgress},
		{Status: StatusInProgress},
		{Status: StatusDone},
	}

	b := BuildBoard(tickets)
	if len(b.Todo) != 1 || len(b.InProgress) != 2 || len(b.InReview) != 0 || len(b.Done) != 1 {
		t.Fatalf("unexpected board grouping: %+v", b)
	}
}
