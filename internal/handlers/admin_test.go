package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/devmarket/marketplace-api/internal/database"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/notify"
	"github.com/devmarket/marketplace-api/internal/repository"
	"github.com/devmarket/marketplace-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AdminHandlerTestSuite defines the test suite for AdminHandler
type AdminHandlerTestSuite struct {
	suite.Suite
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	handler    *AdminHandler
	admin      *models.User
}

// SetupTest runs before each test
func (suite *AdminHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.DeveloperProfile{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	logger := zap.NewNop()
	suite.dispatcher = notify.NewDispatcher(discardSender{}, logger, 1)

	userRepo := repository.NewUserRepository(suite.db)
	audit := services.NewAuditService(repository.NewActivityRepository(suite.db), logger)
	accountService := services.NewAccountService(userRepo, suite.dispatcher, audit, logger)

	suite.handler = NewAdminHandler(accountService, audit)

	suite.admin = &models.User{
		Email:         "admin@example.com",
		Name:          "Admin",
		PasswordHash:  "hashedpassword",
		Role:          models.RoleAdmin,
		AccountStatus: models.AccountActive,
	}
	suite.db.Create(suite.admin)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AdminHandlerTestSuite) TearDownTest() {
	suite.dispatcher.Close()

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AdminHandlerTestSuite) createPendingDeveloper(email string) *models.User {
	user := &models.User{
		Email:         email,
		Name:          email,
		PasswordHash:  "hashedpassword",
		Role:          models.RoleDeveloper,
		AccountStatus: models.AccountPendingApproval,
	}
	suite.db.Create(user)
	return user
}

func (suite *AdminHandlerTestSuite) createAdminContext(method, url string, targetID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, url, nil)
	c.Set("current_user", *suite.admin)
	if targetID != 0 {
		c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(targetID, 10)}}
	}
	return c, w
}

// TestListPendingDevelopers tests the approval queue listing
func (suite *AdminHandlerTestSuite) TestListPendingDevelopers() {
	suite.createPendingDeveloper("dev1@example.com")
	suite.createPendingDeveloper("dev2@example.com")

	c, w := suite.createAdminContext("GET", "/api/admin/developers/pending", 0)

	suite.handler.ListPendingDevelopers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	developers := response["developers"].([]interface{})
	assert.Len(suite.T(), developers, 2)
}

// TestApproveAccount tests approving a pending developer
func (suite *AdminHandlerTestSuite) TestApproveAccount() {
	dev := suite.createPendingDeveloper("dev@example.com")

	c, w := suite.createAdminContext("POST", fmt.Sprintf("/api/admin/users/%d/approve", dev.ID), dev.ID)

	suite.handler.ApproveAccount(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var reloaded models.User
	suite.db.First(&reloaded, dev.ID)
	assert.Equal(suite.T(), models.AccountActive, reloaded.AccountStatus)
}

// TestApproveAccount_AlreadyActive tests approving a non-pending account
func (suite *AdminHandlerTestSuite) TestApproveAccount_AlreadyActive() {
	dev := suite.createPendingDeveloper("dev@example.com")
	suite.db.Model(&models.User{}).Where("id = ?", dev.ID).Update("account_status", models.AccountActive)

	c, w := suite.createAdminContext("POST", fmt.Sprintf("/api/admin/users/%d/approve", dev.ID), dev.ID)

	suite.handler.ApproveAccount(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestApproveAccount_NotFound tests approving a missing account
func (suite *AdminHandlerTestSuite) TestApproveAccount_NotFound() {
	c, w := suite.createAdminContext("POST", "/api/admin/users/999/approve", 999)

	suite.handler.ApproveAccount(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestRejectAccount tests declining a pending developer
func (suite *AdminHandlerTestSuite) TestRejectAccount() {
	dev := suite.createPendingDeveloper("dev@example.com")

	c, w := suite.createAdminContext("POST", fmt.Sprintf("/api/admin/users/%d/reject", dev.ID), dev.ID)

	suite.handler.RejectAccount(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var reloaded models.User
	suite.db.First(&reloaded, dev.ID)
	assert.Equal(suite.T(), models.AccountRejected, reloaded.AccountStatus)
}

// TestFlagAndUnflagAccount tests the moderation flag round trip
func (suite *AdminHandlerTestSuite) TestFlagAndUnflagAccount() {
	dev := suite.createPendingDeveloper("dev@example.com")

	c, w := suite.createAdminContext("POST", fmt.Sprintf("/api/admin/users/%d/flag", dev.ID), dev.ID)
	suite.handler.FlagAccount(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var reloaded models.User
	suite.db.First(&reloaded, dev.ID)
	assert.True(suite.T(), reloaded.IsFlagged)

	c, w = suite.createAdminContext("POST", fmt.Sprintf("/api/admin/users/%d/unflag", dev.ID), dev.ID)
	suite.handler.UnflagAccount(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	suite.db.First(&reloaded, dev.ID)
	assert.False(suite.T(), reloaded.IsFlagged)
}

// TestListActivity tests the audit trail listing
func (suite *AdminHandlerTestSuite) TestListActivity() {
	dev := suite.createPendingDeveloper("dev@example.com")

	c, _ := suite.createAdminContext("POST", fmt.Sprintf("/api/admin/users/%d/approve", dev.ID), dev.ID)
	suite.handler.ApproveAccount(c)

	c, w := suite.createAdminContext("GET", "/api/admin/activity", 0)
	suite.handler.ListActivity(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response, "activity")
	assert.Contains(suite.T(), response, "pagination")

	entries := response["activity"].([]interface{})
	suite.Require().Len(entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(suite.T(), services.ActionAccountApproved, entry["action"])
}

func TestAdminHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}
