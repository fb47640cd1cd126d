package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"docman/cache"
	"docman/config"
	"docman/helper"
	"docman/internal/testdb"
	"docman/models"
	"docman/repositories"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	cfg *config.Config

	userRepo  repositories.UserRepository
	docRepo   repositories.DocumentRepository
	roleRepo  repositories.RoleRepository
	blackRepo repositories.BlacklistRepository

	tokens    TokenService
	blacklist BlacklistService
	auth      AuthService
	users     UserService
	documents DocumentService
	roles     RoleService

	admin models.Caller
	alice models.Caller
	bob   models.Caller
}

func (s *ServiceTestSuite) SetupTest() {
	s.db = testdb.New(s.T())
	s.cfg = testdb.Config()
	access := helper.NewAccessControl(s.cfg.AdminRoleID)

	s.userRepo = repositories.NewUserRepository(s.db)
	s.docRepo = repositories.NewDocumentRepository(s.db)
	s.roleRepo = repositories.NewRoleRepository(s.db)
	s.blackRepo = repositories.NewBlacklistRepository(s.db)

	lru, err := cache.NewLRUTokenCache(s.cfg.BlacklistCacheSize)
	s.Require().NoError(err)

	s.tokens = NewTokenService(s.cfg.JWT)
	s.blacklist = NewBlacklistService(s.blackRepo, lru, nil)
	s.auth = NewAuthService(s.userRepo, s.tokens, s.blacklist, AuthOptions{
		DefaultRoleID: s.cfg.DefaultRoleID,
	}, nil)
	s.users = NewUserService(s.userRepo, s.docRepo, s.roleRepo, access, nil)
	s.documents = NewDocumentService(s.docRepo, access, nil)
	s.roles = NewRoleService(s.roleRepo, access, s.cfg.DefaultRoleID, nil)

	s.admin = s.register("admin")
	s.alice = s.register("alice")
	s.bob = s.register("bob")

	user, err := s.userRepo.GetByID(s.admin.UserID)
	s.Require().NoError(err)
	s.Require().NoError(s.userRepo.Update(user, map[string]interface{}{"role_id": s.cfg.AdminRoleID}))
	s.admin.RoleID = s.cfg.AdminRoleID
}

func (s *ServiceTestSuite) register(name string) models.Caller {
	res, err := s.auth.Register(models.CreateUserRequest{
		Username:  name,
		Email:     name + "@example.com",
		Password:  "password123",
		Firstname: name,
		Lastname:  "Tester",
	})
	s.Require().NoError(err)
	return models.Caller{UserID: res.UserID, RoleID: res.RoleID, Username: name}
}

func (s *ServiceTestSuite) createDocument(owner models.Caller, title string, access models.DocumentAccess) *models.Document {
	doc, err := s.documents.CreateDocument(models.CreateDocumentRequest{
		Title:   title,
		Content: "content of " + title,
		Access:  access,
	}, owner)
	s.Require().NoError(err)
	return doc
}

func firstPage() helper.PageParams {
	return helper.PageParams{Limit: helper.DefaultLimit, Order: helper.DefaultOrder}
}

func strPtr(s string) *string { return &s }

// Token service

func (s *ServiceTestSuite) TestTokenRoundTrip() {
	user, err := s.userRepo.GetByID(s.alice.UserID)
	s.Require().NoError(err)

	token, err := s.tokens.GenerateToken(user)
	s.Require().NoError(err)

	claims, err := s.tokens.ParseToken(token)
	s.Require().NoError(err)
	s.Equal(s.alice, claims.Caller())
	s.NotEmpty(claims.ID)
	s.WithinDuration(time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func (s *ServiceTestSuite) TestTokenExpiredAndForged() {
	user, err := s.userRepo.GetByID(s.alice.UserID)
	s.Require().NoError(err)

	past := &tokenService{cfg: s.cfg.JWT, now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	expired, err := past.GenerateToken(user)
	s.Require().NoError(err)

	_, err = s.tokens.ParseToken(expired)
	s.Require().Error(err)
	s.Equal(models.TokenInvalid, err.(models.ErrorUnauthorized).Reason)

	exp, err := s.tokens.ExpiresAt(expired)
	s.Require().NoError(err)
	s.True(exp.Before(time.Now()))

	forger := NewTokenService(config.JWTConfig{Secret: []byte("other"), Expiration: time.Hour})
	forged, err := forger.GenerateToken(user)
	s.Require().NoError(err)

	_, err = s.tokens.ParseToken(forged)
	s.IsType(models.ErrorUnauthorized{}, err)

	_, err = s.tokens.ParseToken("not-a-token")
	s.IsType(models.ErrorUnauthorized{}, err)
}

// Blacklist service

func (s *ServiceTestSuite) TestBlacklistRevoke() {
	ctx := context.Background()

	revoked, err := s.blacklist.IsRevoked(ctx, "tok")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.blacklist.Revoke(ctx, "tok", time.Now().Add(time.Hour)))
	s.Require().NoError(s.blacklist.Revoke(ctx, "tok", time.Now().Add(time.Hour)))

	revoked, err = s.blacklist.IsRevoked(ctx, "tok")
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *ServiceTestSuite) TestBlacklistBackfillsCache() {
	ctx := context.Background()
	s.Require().NoError(s.blackRepo.Add(ctx, "stored", time.Now().Add(time.Hour)))

	lru, err := cache.NewLRUTokenCache(8)
	s.Require().NoError(err)
	svc := NewBlacklistService(s.blackRepo, lru, nil)

	revoked, err := svc.IsRevoked(ctx, "stored")
	s.Require().NoError(err)
	s.True(revoked)
	s.Equal(1, lru.Len())

	hit, err := lru.Contains(ctx, "stored")
	s.Require().NoError(err)
	s.True(hit)
}

func (s *ServiceTestSuite) TestBlacklistPurgeExpired() {
	ctx := context.Background()
	s.Require().NoError(s.blackRepo.Add(ctx, "old", time.Now().Add(-time.Minute)))
	s.Require().NoError(s.blackRepo.Add(ctx, "live", time.Now().Add(time.Hour)))

	n, err := s.blacklist.PurgeExpired(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	revoked, err := s.blacklist.IsRevoked(ctx, "live")
	s.Require().NoError(err)
	s.True(revoked)
}

// Auth service

func (s *ServiceTestSuite) TestRegisterConflict() {
	_, err := s.auth.Register(models.CreateUserRequest{
		Username: "alice", Email: "new@example.com", Password: "password123",
		Firstname: "a", Lastname: "b",
	})
	s.IsType(models.ErrorConflict{}, err)

	_, err = s.auth.Register(models.CreateUserRequest{
		Username: "newname", Email: "bob@example.com", Password: "password123",
		Firstname: "a", Lastname: "b",
	})
	s.IsType(models.ErrorConflict{}, err)
}

func (s *ServiceTestSuite) TestRegisterUsesDefaultRole() {
	s.Equal(s.cfg.DefaultRoleID, s.alice.RoleID)

	user, err := s.auth.GetUserByID(s.alice.UserID)
	s.Require().NoError(err)
	s.NotEqual("password123", user.Password)
}

func (s *ServiceTestSuite) TestLogin() {
	res, err := s.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	s.Require().NoError(err)
	s.Equal(s.alice.UserID, res.UserID)
	s.Equal("alice@example.com", res.Email)
	s.NotEmpty(res.Token)

	res, err = s.auth.Login(models.LoginRequest{Email: "bob@example.com", Password: "password123"})
	s.Require().NoError(err)
	s.Equal(s.bob.UserID, res.UserID)

	_, err = s.auth.Login(models.LoginRequest{Username: "nobody", Password: "password123"})
	s.Equal(models.ErrorForbidden{Message: "User does not exist"}, err)

	_, err = s.auth.Login(models.LoginRequest{Username: "alice", Password: "wrong-password"})
	s.Require().IsType(models.ErrorUnauthorized{}, err)
	s.Equal(models.BadLogin, err.(models.ErrorUnauthorized).Reason)
}

func (s *ServiceTestSuite) TestLogout() {
	ctx := context.Background()

	s.Equal(models.ErrNoToken, s.auth.Logout(ctx, ""))

	res, err := s.auth.Login(models.LoginRequest{Username: "alice", Password: "password123"})
	s.Require().NoError(err)

	s.Require().NoError(s.auth.Logout(ctx, res.Token))
	s.Require().NoError(s.auth.Logout(ctx, res.Token))

	revoked, err := s.blacklist.IsRevoked(ctx, res.Token)
	s.Require().NoError(err)
	s.True(revoked)

	entry, err := s.blackRepo.Get(ctx, res.Token)
	s.Require().NoError(err)
	s.WithinDuration(time.Now().Add(time.Hour), entry.ExpiresAt, time.Minute)

	// tokens that can never authenticate are acknowledged but not kept
	user, err := s.userRepo.GetByID(s.alice.UserID)
	s.Require().NoError(err)
	past := &tokenService{cfg: s.cfg.JWT, now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	expired, err := past.GenerateToken(user)
	s.Require().NoError(err)

	for _, token := range []string{"garbage", expired} {
		s.Require().NoError(s.auth.Logout(ctx, token))

		revoked, err := s.blacklist.IsRevoked(ctx, token)
		s.Require().NoError(err)
		s.False(revoked)

		_, err = s.blackRepo.Get(ctx, token)
		s.ErrorIs(err, gorm.ErrRecordNotFound)
	}

	var count int64
	s.Require().NoError(s.db.Model(&models.BlacklistedToken{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *ServiceTestSuite) TestPasswordTooLong() {
	long := strings.Repeat("é", 40)

	_, err := s.auth.Register(models.CreateUserRequest{
		Username:  "carol",
		Email:     "carol@example.com",
		Password:  long,
		Firstname: "Carol",
		Lastname:  "Tester",
	})
	s.Equal(errPasswordTooLong, err)

	_, err = s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{Password: &long}, s.alice)
	s.IsType(models.ErrorBadRequest{}, err)
}

// User service

func (s *ServiceTestSuite) TestGetUsers() {
	_, _, err := s.users.GetUsers(s.alice, firstPage())
	s.Equal(models.ErrUnauthorized, err)

	users, total, err := s.users.GetUsers(s.admin, helper.PageParams{Limit: 2, Order: helper.DefaultOrder})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 2)
}

func (s *ServiceTestSuite) TestGetUser() {
	res, err := s.users.GetUser(s.alice.UserID, s.alice)
	s.Require().NoError(err)
	profile, ok := res.(models.UserProfile)
	s.Require().True(ok)
	s.Equal("alice", profile.Username)

	res, err = s.users.GetUser(s.alice.UserID, s.admin)
	s.Require().NoError(err)
	user, ok := res.(*models.User)
	s.Require().True(ok)
	s.Equal(s.alice.UserID, user.ID)

	_, err = s.users.GetUser(s.alice.UserID, s.bob)
	s.Equal(models.ErrUnauthorized, err)

	_, err = s.users.GetUser(999, s.admin)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestUpdateUser() {
	_, err := s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{}, s.alice)
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{Firstname: strPtr("x")}, s.bob)
	s.Equal(models.ErrUnauthorized, err)

	_, err = s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{Username: strPtr("bob")}, s.alice)
	s.IsType(models.ErrorConflict{}, err)

	updated, err := s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{
		Firstname: strPtr("Alicia"),
		Password:  strPtr("new-password"),
	}, s.alice)
	s.Require().NoError(err)
	s.Equal("Alicia", updated.Firstname)
	s.Equal("alice", updated.Username)

	_, err = s.auth.Login(models.LoginRequest{Username: "alice", Password: "new-password"})
	s.NoError(err)

	_, err = s.users.UpdateUser(999, models.UpdateUserRequest{Firstname: strPtr("x")}, s.admin)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestUpdateUserRole() {
	guest := uint(3)
	missing := uint(99)

	// only admins may change roles
	_, err := s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{RoleID: &guest}, s.alice)
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{RoleID: &missing}, s.admin)
	s.Equal(models.ErrorBadRequest{Message: "role does not exist"}, err)

	updated, err := s.users.UpdateUser(s.alice.UserID, models.UpdateUserRequest{RoleID: &guest}, s.admin)
	s.Require().NoError(err)
	s.Equal(guest, updated.RoleID)
}

func (s *ServiceTestSuite) TestDeleteUser() {
	s.createDocument(s.alice, "alice doc", models.AccessPublic)

	s.Equal(models.ErrUnauthorized, s.users.DeleteUser(s.alice.UserID, s.bob))
	s.Require().NoError(s.users.DeleteUser(s.alice.UserID, s.alice))

	_, err := s.users.GetUser(s.alice.UserID, s.admin)
	s.IsType(models.ErrorNotFound{}, err)

	_, total, err := s.documents.GetDocuments(s.admin, firstPage())
	s.Require().NoError(err)
	s.Zero(total)

	s.IsType(models.ErrorNotFound{}, s.users.DeleteUser(s.alice.UserID, s.admin))

	// a caller whose account is gone cannot own new documents
	_, err = s.documents.CreateDocument(models.CreateDocumentRequest{Title: "Orphan", Content: "x"}, s.alice)
	s.Equal(errDanglingReference, err)
}

func (s *ServiceTestSuite) TestGetUserDocuments() {
	s.createDocument(s.alice, "alice public", models.AccessPublic)
	s.createDocument(s.alice, "alice private", models.AccessPrivate)

	_, total, err := s.users.GetUserDocuments(s.alice.UserID, s.alice, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	docs, total, err := s.users.GetUserDocuments(s.alice.UserID, s.bob, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("alice public", docs[0].Title)

	_, total, err = s.users.GetUserDocuments(s.alice.UserID, s.admin, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	_, _, err = s.users.GetUserDocuments(s.bob.UserID, s.alice, firstPage())
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestSearchUsers() {
	_, _, err := s.users.SearchUsers("ali", s.alice, firstPage())
	s.Equal(models.ErrUnauthorized, err)

	_, _, err = s.users.SearchUsers("%%", s.admin, firstPage())
	s.IsType(models.ErrorBadRequest{}, err)

	users, total, err := s.users.SearchUsers("ALI", s.admin, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("alice", users[0].Username)

	// every user shares the lastname
	_, total, err = s.users.SearchUsers("tester", s.admin, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	_, _, err = s.users.SearchUsers("zzz", s.admin, firstPage())
	s.Equal(models.ErrorNotFound{Message: "no result"}, err)
}

// Document service

func (s *ServiceTestSuite) TestCreateDocument() {
	doc := s.createDocument(s.alice, "Plan", "")
	s.Equal(models.AccessPublic, doc.Access)
	s.Equal(s.alice.UserID, doc.OwnerID)

	_, err := s.documents.CreateDocument(models.CreateDocumentRequest{Title: "Plan", Content: "x"}, s.bob)
	s.IsType(models.ErrorConflict{}, err)

	_, err = s.documents.CreateDocument(models.CreateDocumentRequest{Title: "Other", Content: "x", Access: "secret"}, s.bob)
	s.IsType(models.ErrorBadRequest{}, err)
}

func (s *ServiceTestSuite) TestGetDocument() {
	private := s.createDocument(s.alice, "private", models.AccessPrivate)
	public := s.createDocument(s.alice, "public", models.AccessPublic)

	_, err := s.documents.GetDocument(private.ID, s.bob)
	s.Equal(models.ErrUnauthorized, err)

	got, err := s.documents.GetDocument(public.ID, s.bob)
	s.Require().NoError(err)
	s.Equal("public", got.Title)

	_, err = s.documents.GetDocument(private.ID, s.alice)
	s.NoError(err)
	_, err = s.documents.GetDocument(private.ID, s.admin)
	s.NoError(err)

	_, err = s.documents.GetDocument(999, s.admin)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestGetDocumentsVisibility() {
	s.createDocument(s.alice, "a1", models.AccessPrivate)
	s.createDocument(s.alice, "a2", models.AccessPublic)
	s.createDocument(s.bob, "b1", models.AccessPrivate)

	_, total, err := s.documents.GetDocuments(s.admin, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	docs, total, err := s.documents.GetDocuments(s.bob, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	for _, d := range docs {
		s.True(d.OwnerID == s.bob.UserID || d.Access == models.AccessPublic)
	}
}

func (s *ServiceTestSuite) TestUpdateDocument() {
	doc := s.createDocument(s.alice, "draft", models.AccessPrivate)
	s.createDocument(s.bob, "taken", models.AccessPublic)

	_, err := s.documents.UpdateDocument(doc.ID, models.UpdateDocumentRequest{Title: strPtr("x")}, s.bob)
	s.Equal(models.ErrUnauthorized, err)

	_, err = s.documents.UpdateDocument(doc.ID, models.UpdateDocumentRequest{}, s.alice)
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.documents.UpdateDocument(doc.ID, models.UpdateDocumentRequest{Title: strPtr("taken")}, s.alice)
	s.IsType(models.ErrorConflict{}, err)

	public := models.AccessPublic
	updated, err := s.documents.UpdateDocument(doc.ID, models.UpdateDocumentRequest{
		Title:  strPtr("final"),
		Access: &public,
	}, s.admin)
	s.Require().NoError(err)
	s.Equal("final", updated.Title)
	s.Equal(models.AccessPublic, updated.Access)
	s.Equal(s.alice.UserID, updated.OwnerID)

	// keeping the same title is not a collision
	_, err = s.documents.UpdateDocument(doc.ID, models.UpdateDocumentRequest{Title: strPtr("final")}, s.alice)
	s.NoError(err)

	_, err = s.documents.UpdateDocument(999, models.UpdateDocumentRequest{Title: strPtr("x")}, s.admin)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestDeleteDocument() {
	doc := s.createDocument(s.alice, "gone", models.AccessPublic)

	s.Equal(models.ErrUnauthorized, s.documents.DeleteDocument(doc.ID, s.bob))
	s.Require().NoError(s.documents.DeleteDocument(doc.ID, s.alice))
	s.IsType(models.ErrorNotFound{}, s.documents.DeleteDocument(doc.ID, s.alice))
}

func (s *ServiceTestSuite) TestSearchDocuments() {
	s.createDocument(s.alice, "Quarterly Report", models.AccessPrivate)
	s.createDocument(s.alice, "Notes", models.AccessPublic)
	s.createDocument(s.bob, "Report draft", models.AccessPublic)

	_, total, err := s.documents.SearchDocuments("report", s.admin, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	docs, total, err := s.documents.SearchDocuments("re-port!", s.bob, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("Report draft", docs[0].Title)

	// content matches too
	_, total, err = s.documents.SearchDocuments("content", s.bob, firstPage())
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	_, _, err = s.documents.SearchDocuments("", s.bob, firstPage())
	s.IsType(models.ErrorBadRequest{}, err)

	_, _, err = s.documents.SearchDocuments("nothing", s.bob, firstPage())
	s.IsType(models.ErrorNotFound{}, err)
}

// Role service

func (s *ServiceTestSuite) TestRolesAdminOnly() {
	_, err := s.roles.GetRoles(s.alice)
	s.Equal(models.ErrUnauthorized, err)
	_, err = s.roles.CreateRole(models.RoleRequest{Title: "Editor"}, s.alice)
	s.Equal(models.ErrUnauthorized, err)
	s.Equal(models.ErrUnauthorized, s.roles.DeleteRole(3, s.alice))

	roles, err := s.roles.GetRoles(s.admin)
	s.Require().NoError(err)
	s.Len(roles, len(models.DefaultRoles))
	s.Equal("Regular", roles[0].Title)
}

func (s *ServiceTestSuite) TestCreateAndUpdateRole() {
	role, err := s.roles.CreateRole(models.RoleRequest{Title: "Editor"}, s.admin)
	s.Require().NoError(err)
	s.NotZero(role.ID)

	_, err = s.roles.CreateRole(models.RoleRequest{Title: "editor"}, s.admin)
	s.IsType(models.ErrorConflict{}, err)

	_, err = s.roles.UpdateRole(role.ID, models.RoleRequest{Title: "Admin"}, s.admin)
	s.IsType(models.ErrorConflict{}, err)

	updated, err := s.roles.UpdateRole(role.ID, models.RoleRequest{Title: "Reviewer"}, s.admin)
	s.Require().NoError(err)
	s.Equal("Reviewer", updated.Title)

	_, err = s.roles.UpdateRole(999, models.RoleRequest{Title: "Ghost"}, s.admin)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestDeleteRole() {
	s.IsType(models.ErrorBadRequest{}, s.roles.DeleteRole(s.cfg.AdminRoleID, s.admin))
	s.IsType(models.ErrorBadRequest{}, s.roles.DeleteRole(s.cfg.DefaultRoleID, s.admin))
	s.IsType(models.ErrorNotFound{}, s.roles.DeleteRole(999, s.admin))

	guest := uint(3)
	_, err := s.users.UpdateUser(s.bob.UserID, models.UpdateUserRequest{RoleID: &guest}, s.admin)
	s.Require().NoError(err)
	s.IsType(models.ErrorConflict{}, s.roles.DeleteRole(guest, s.admin))

	_, err = s.users.UpdateUser(s.bob.UserID, models.UpdateUserRequest{RoleID: &s.cfg.DefaultRoleID}, s.admin)
	s.Require().NoError(err)
	s.Require().NoError(s.roles.DeleteRole(guest, s.admin))

	_, err = s.roles.GetRole(guest, s.admin)
	s.IsType(models.ErrorNotFound{}, err)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
