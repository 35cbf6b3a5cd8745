package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

func TestAdminService_DeleteUser_Cascade(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := NewAdminService(users, tasks, testLogger())
	taskSvc := NewTaskService(tasks, users, &stubNotifier{}, testLogger())

	admin := seedUser(users, "root", domain.RoleAdmin)
	target := seedUser(users, "doomed", domain.RoleUser)
	survivor := seedUser(users, "survivor", domain.RoleUser)

	_, _ = taskSvc.Create(context.Background(), target.ID, ports.CreateTaskInput{Title: "a"})
	_, _ = taskSvc.Create(context.Background(), target.ID, ports.CreateTaskInput{Title: "b"})
	kept, _ := taskSvc.Create(context.Background(), survivor.ID, ports.CreateTaskInput{Title: "c"})

	if err := svc.DeleteUser(context.Background(), target.ID, asCaller(admin)); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := users.FindByID(context.Background(), target.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("target user still present: %v", err)
	}
	remaining, _ := tasks.ListAll(context.Background())
	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Fatalf("cascade removed the wrong tasks: %+v", remaining)
	}
}

func TestAdminService_DeleteUser_Self(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := NewAdminService(users, tasks, testLogger())

	admin := seedUser(users, "root", domain.RoleAdmin)

	if err := svc.DeleteUser(context.Background(), admin.ID, asCaller(admin)); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := users.FindByID(context.Background(), admin.ID); err != nil {
		t.Fatalf("admin removed despite guard: %v", err)
	}
}

func TestAdminService_DeleteUser_NotFound(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := NewAdminService(users, tasks, testLogger())

	admin := seedUser(users, "root", domain.RoleAdmin)

	if err := svc.DeleteUser(context.Background(), "user_404", asCaller(admin)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_ListAllTasks_OwnerProjection(t *testing.T) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	svc := NewAdminService(users, tasks, testLogger())
	taskSvc := NewTaskService(tasks, users, &stubNotifier{}, testLogger())

	alice := seedUser(users, "alice", domain.RoleUser)
	bob := seedUser(users, "bob", domain.RoleUser)
	_, _ = taskSvc.Create(context.Background(), alice.ID, ports.CreateTaskInput{Title: "one"})
	_, _ = taskSvc.Create(context.Background(), bob.ID, ports.CreateTaskInput{Title: "two"})
	orphan, _ := taskSvc.Create(context.Background(), bob.ID, ports.CreateTaskInput{Title: "orphan"})

	// Simulate an owner deleted between task listing and owner lookup.
	orphan.UserID = "user_gone"
	tasks.tasks[orphan.ID].UserID = "user_gone"

	listed, err := svc.ListAllTasks(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(listed))
	}

	byTitle := make(map[string]ports.TaskWithOwner, len(listed))
	for _, item := range listed {
		byTitle[item.Task.Title] = item
	}
	if got := byTitle["one"].Owner; got.Username != "alice" || got.Email != "alice@example.com" {
		t.Fatalf("wrong owner projection: %+v", got)
	}
	if got := byTitle["two"].Owner; got.Username != "bob" {
		t.Fatalf("wrong owner projection: %+v", got)
	}
	if got := byTitle["orphan"].Owner; got != (ports.OwnerProjection{}) {
		t.Fatalf("expected empty projection for missing owner, got %+v", got)
	}
}
