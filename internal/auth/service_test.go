package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventra-backend/internal/database"
	"inventra-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Fullname:     "Test Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginUser_Success(t *testing.T) {
	db := setupAuthTest(t)
	seeded := seedUser(t, db, "admin@example.com", "s3cret-pass")

	user, err := LoginUser(db, LoginInput{Email: "admin@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, user.UserID)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	db := setupAuthTest(t)
	seedUser(t, db, "admin@example.com", "s3cret-pass")

	_, err := LoginUser(db, LoginInput{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginUser(db, LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLoginUser_MissingFields(t *testing.T) {
	db := setupAuthTest(t)

	_, err := LoginUser(db, LoginInput{Email: "admin@example.com"})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)

	_, err = LoginUser(db, LoginInput{Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func newProbeRequest() *http.Request {
	return httptest.NewRequest("GET", "/probe", nil)
}

func TestActorFromSession(t *testing.T) {
	app := fiber.New()
	id := uuid.New()

	app.Get("/probe", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  id.String(),
			"fullname": "Ops Manager",
			"role":     "manager",
		})
		actor, err := ActorFromSession(c)
		require.NoError(t, err)
		assert.Equal(t, id, actor.UserID)
		assert.Equal(t, "Ops Manager", actor.Fullname)
		assert.Equal(t, "manager", actor.Role)
		return c.SendStatus(fiber.StatusOK)
	})
	_, err := app.Test(newProbeRequest())
	require.NoError(t, err)
}

func TestActorFromSession_MissingOrMalformed(t *testing.T) {
	app := fiber.New()

	app.Get("/probe", func(c *fiber.Ctx) error {
		_, err := ActorFromSession(c)
		assert.ErrorIs(t, err, ErrNotAuthenticated)

		c.Locals("user", map[string]interface{}{"user_id": "not-a-uuid"})
		_, err = ActorFromSession(c)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		return c.SendStatus(fiber.StatusOK)
	})
	_, err := app.Test(newProbeRequest())
	require.NoError(t, err)
}
