package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

type SectionRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	sectionRepo section.Repository
	userRepo    user.Repository
	testOwner   *user.User
}

func (s *SectionRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewNop()
	s.sectionRepo = NewPostgresSectionRepo(s.dbPool, s.testLogger)
	s.userRepo = NewPostgresUserRepo(s.dbPool, s.testLogger)

	s.testOwner = &user.User{
		ID:           uuid.New(),
		Username:     "testowner",
		Email:        "testowner@example.com",
		PasswordHash: "hashedpassword",
	}
	query := `INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`
	_, err = s.dbPool.Exec(ctx, query, s.testOwner.ID, s.testOwner.Username, s.testOwner.Email, s.testOwner.PasswordHash)
	if err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *SectionRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestSectionRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(SectionRepoIntegrationTestSuite))
}

func (s *SectionRepoIntegrationTestSuite) newSection(typ section.SectionType, position int) *section.Section {
	return &section.Section{
		ID:        uuid.New(),
		OwnerID:   s.testOwner.ID,
		Type:      typ,
		Content:   section.DefaultContent(typ),
		Visible:   true,
		Position:  position,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func (s *SectionRepoIntegrationTestSuite) Test_Save_And_FindByID() {
	ctx := context.Background()

	sec := s.newSection(section.TypeAbout, 0)
	about := sec.Content.(*section.AboutContent)
	about.Text = "Hello, I build things."

	s.NoError(s.sectionRepo.Save(ctx, sec))

	found, err := s.sectionRepo.FindByID(ctx, sec.ID, s.testOwner.ID)
	s.NoError(err)
	s.NotNil(found)
	s.Equal(sec.Type, found.Type)

	foundAbout, ok := found.Content.(*section.AboutContent)
	s.True(ok)
	s.Equal("Hello, I build things.", foundAbout.Text)
}

func (s *SectionRepoIntegrationTestSuite) Test_FindByID_WrongOwner() {
	ctx := context.Background()

	sec := s.newSection(section.TypeSkills, 1)
	s.NoError(s.sectionRepo.Save(ctx, sec))

	_, err := s.sectionRepo.FindByID(ctx, sec.ID, uuid.New())
	s.ErrorIs(err, section.ErrSectionNotFound)
}

func (s *SectionRepoIntegrationTestSuite) Test_ListByOwner_OrderedByPosition() {
	ctx := context.Background()
	ownerID := uuid.New()
	_, err := s.dbPool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
		ownerID, "orderowner", "orderowner@example.com", "hashedpassword")
	s.NoError(err)

	for i, typ := range []section.SectionType{section.TypeLinks, section.TypeAbout, section.TypeSkills} {
		sec := s.newSection(typ, 2-i)
		sec.OwnerID = ownerID
		s.NoError(s.sectionRepo.Save(ctx, sec))
	}

	listed, err := s.sectionRepo.ListByOwner(ctx, ownerID)
	s.NoError(err)
	s.Len(listed, 3)
	s.Equal(section.TypeSkills, listed[0].Type)
	s.Equal(section.TypeAbout, listed[1].Type)
	s.Equal(section.TypeLinks, listed[2].Type)
}

func (s *SectionRepoIntegrationTestSuite) Test_Update() {
	ctx := context.Background()

	sec := s.newSection(section.TypeLearningGoals, 5)
	s.NoError(s.sectionRepo.Save(ctx, sec))

	goals := sec.Content.(*section.LearningGoalsContent)
	goals.Goals = append(goals.Goals, section.LearningGoal{Topic: "Diffusion models", Progress: 40})
	sec.Visible = false
	sec.UpdatedAt = time.Now().UTC()
	s.NoError(s.sectionRepo.Update(ctx, sec))

	found, err := s.sectionRepo.FindByID(ctx, sec.ID, s.testOwner.ID)
	s.NoError(err)
	s.False(found.Visible)
	foundGoals := found.Content.(*section.LearningGoalsContent)
	s.Len(foundGoals.Goals, 1)
	s.Equal("Diffusion models", foundGoals.Goals[0].Topic)

	// Updating on behalf of another owner must not touch the row.
	sec.OwnerID = uuid.New()
	s.ErrorIs(s.sectionRepo.Update(ctx, sec), section.ErrSectionNotFound)
}

func (s *SectionRepoIntegrationTestSuite) Test_Delete() {
	ctx := context.Background()

	sec := s.newSection(section.TypeCustom, 7)
	s.NoError(s.sectionRepo.Save(ctx, sec))

	s.ErrorIs(s.sectionRepo.Delete(ctx, sec.ID, uuid.New()), section.ErrSectionNotFound)

	s.NoError(s.sectionRepo.Delete(ctx, sec.ID, s.testOwner.ID))
	_, err := s.sectionRepo.FindByID(ctx, sec.ID, s.testOwner.ID)
	s.ErrorIs(err, section.ErrSectionNotFound)
}

func (s *SectionRepoIntegrationTestSuite) Test_UpdatePositions() {
	ctx := context.Background()
	ownerID := uuid.New()
	_, err := s.dbPool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
		ownerID, "reorderowner", "reorderowner@example.com", "hashedpassword")
	s.NoError(err)

	var ids []uuid.UUID
	for i, typ := range []section.SectionType{section.TypeAbout, section.TypeSkills, section.TypeLinks} {
		sec := s.newSection(typ, i)
		sec.OwnerID = ownerID
		s.NoError(s.sectionRepo.Save(ctx, sec))
		ids = append(ids, sec.ID)
	}

	s.NoError(s.sectionRepo.UpdatePositions(ctx, ownerID, []uuid.UUID{ids[2], ids[0], ids[1]}))

	listed, err := s.sectionRepo.ListByOwner(ctx, ownerID)
	s.NoError(err)
	s.Len(listed, 3)
	s.Equal(ids[2], listed[0].ID)
	s.Equal(ids[0], listed[1].ID)
	s.Equal(ids[1], listed[2].ID)
	for i, sec := range listed {
		s.Equal(i, sec.Position)
	}
}

func (s *SectionRepoIntegrationTestSuite) Test_BadContentDegradesToDefault() {
	ctx := context.Background()

	sec := s.newSection(section.TypeSkills, 9)
	s.NoError(s.sectionRepo.Save(ctx, sec))

	_, err := s.dbPool.Exec(ctx,
		`UPDATE profile_sections SET content = '{"skills": "not-an-array"}' WHERE id = $1`, sec.ID)
	s.NoError(err)

	found, err := s.sectionRepo.FindByID(ctx, sec.ID, s.testOwner.ID)
	s.NoError(err)
	_, ok := found.Content.(*section.SkillsContent)
	s.True(ok)
}
