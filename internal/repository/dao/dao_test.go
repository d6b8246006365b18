package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("dao tests: docker unavailable, skipping integration tests: %v", err)
		os.Exit(m.Run())
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("dao tests: docker unavailable, skipping integration tests: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=hubicito",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=hubicito",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://hubicito:secret@%s/hubicito?sslmode=disable", resource.GetHostPort("5432/tcp"))
	pool.MaxWait = 90 * time.Second
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres: %v", err)
	}

	os.Exit(code)
}

func resetDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres is not available")
	}

	require.NoError(t, dropAllTables(testDB))
	require.NoError(t, InitTables(testDB))

	return testDB
}

func insertProfile(t *testing.T, db *gorm.DB, email, role string) Profile {
	t.Helper()

	p, err := NewProfileDAO(db).Insert(context.Background(), Profile{
		Email:    email,
		Password: "hash",
		FullName: "Test " + role,
		Role:     role,
	})
	require.NoError(t, err)

	return p
}

func TestProfileDAO_Insert(t *testing.T) {
	db := resetDB(t)
	ctx := context.Background()
	d := NewProfileDAO(db)

	created := insertProfile(t, db, "ada@hubicito.dev", "student")
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err := d.Insert(ctx, Profile{Email: "ada@hubicito.dev", Password: "x", FullName: "Again", Role: "student"})
	assert.ErrorIs(t, err, ErrProfileEmailExists)

	found, err := d.FindByEmail(ctx, "ADA@hubicito.dev")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = d.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProjectDAO_UpdateKeepsLikes(t *testing.T) {
	db := resetDB(t)
	ctx := context.Background()
	owner := insertProfile(t, db, "owner@hubicito.dev", "student")
	fan := insertProfile(t, db, "fan@hubicito.dev", "student")
	d := NewProjectDAO(db)

	created, err := d.Insert(ctx, Project{
		OwnerID:      owner.ID,
		Name:         "Hubicito",
		Languages:    []string{"Go"},
		Deliverables: []Deliverable{{Name: "API", Days: 7}},
		Status:       "draft",
	})
	require.NoError(t, err)

	_, _, err = NewLikeDAO(db).Toggle(ctx, created.ID, fan.ID)
	require.NoError(t, err)

	created.Name = "Hubicito v2"
	created.Status = "submitted"
	created.LikesCount = 0
	updated, err := d.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, "Hubicito v2", updated.Name)
	assert.Equal(t, "submitted", updated.Status)
	assert.Equal(t, 1, updated.LikesCount)
	assert.Equal(t, []string{"Go"}, []string(updated.Languages))
	require.Len(t, updated.Deliverables, 1)
	assert.Equal(t, 7, updated.Deliverables[0].Days)

	_, err = d.Update(ctx, Project{ID: uuid.New(), Name: "ghost", Status: "draft"})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectDAO_FindVisibleTo(t *testing.T) {
	db := resetDB(t)
	ctx := context.Background()
	alice := insertProfile(t, db, "alice@hubicito.dev", "student")
	bob := insertProfile(t, db, "bob@hubicito.dev", "student")
	d := NewProjectDAO(db)

	for _, p := range []Project{
		{OwnerID: alice.ID, Name: "alice draft", Status: "draft"},
		{OwnerID: bob.ID, Name: "bob draft", Status: "draft"},
		{OwnerID: bob.ID, Name: "bob approved", Status: "approved"},
	} {
		_, err := d.Insert(ctx, p)
		require.NoError(t, err)
	}

	projects, err := d.Find(ctx, ProjectFilter{
		VisibleTo:      &alice.ID,
		PublicStatuses: []string{"approved", "in_progress", "completed"},
	})
	require.NoError(t, err)

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"alice draft", "bob approved"}, names)

	counts, err := d.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["draft"])
	assert.Equal(t, int64(1), counts["approved"])
}

func TestLikeDAO_Toggle(t *testing.T) {
	db := resetDB(t)
	ctx := context.Background()
	owner := insertProfile(t, db, "owner@hubicito.dev", "student")
	project, err := NewProjectDAO(db).Insert(ctx, Project{OwnerID: owner.ID, Name: "p", Status: "approved"})
	require.NoError(t, err)
	d := NewLikeDAO(db)

	liked, count, err := d.Toggle(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)
	exists, err := d.Exists(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	liked, count, err = d.Toggle(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
	exists, err = d.Exists(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = d.Toggle(ctx, uuid.New(), owner.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestLikeDAO_ToggleConcurrent(t *testing.T) {
	db := resetDB(t)
	ctx := context.Background()
	owner := insertProfile(t, db, "owner@hubicito.dev", "student")
	project, err := NewProjectDAO(db).Insert(ctx, Project{OwnerID: owner.ID, Name: "p", Status: "approved"})
	require.NoError(t, err)
	d := NewLikeDAO(db)

	const fans = 12
	var wg sync.WaitGroup
	for i := 0; i < fans; i++ {
		fan := insertProfile(t, db, fmt.Sprintf("fan%d@hubicito.dev", i), "student")
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			_, _, err := d.Toggle(ctx, project.ID, userID)
			assert.NoError(t, err)
		}(fan.ID)
	}
	wg.Wait()

	stored, err := NewProjectDAO(db).FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, fans, stored.LikesCount)

	total, err := d.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(fans), total)
}

func TestFeedbackDAO_FindByProjectID(t *testing.T) {
	db := resetDB(t)
	ctx := context.Background()
	owner := insertProfile(t, db, "owner@hubicito.dev", "student")
	admin := insertProfile(t, db, "admin@hubicito.dev", "admin")
	project, err := NewProjectDAO(db).Insert(ctx, Project{OwnerID: owner.ID, Name: "p", Status: "submitted"})
	require.NoError(t, err)
	d := NewFeedbackDAO(db)

	_, err = d.Insert(ctx, ProjectFeedback{ProjectID: project.ID, SenderID: admin.ID, Message: "first"})
	require.NoError(t, err)
	_, err = d.Insert(ctx, ProjectFeedback{ProjectID: project.ID, SenderID: owner.ID, Message: "second"})
	require.NoError(t, err)

	thread, err := d.FindByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Message)
	assert.Equal(t, "Test admin", thread[0].SenderName)
	assert.Equal(t, "second", thread[1].Message)
}
