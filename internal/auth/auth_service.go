package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/company"
	"go-payroll/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	companyRepo  company.Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	employeeRepo employee.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		logger:       l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}

	var employeeID *string

	// The employee profile is created together with the account so a login
	// immediately after registering carries the employee_id claim. Company
	// owners create their company profile through a separate endpoint.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
			return mapRepositoryError(err)
		}

		if user.Role != RoleEmployee {
			return nil
		}

		profile := &employee.Employee{
			ID:          uuid.New(),
			UserID:      user.ID,
			FullName:    req.FullName,
			PhoneNumber: req.PhoneNumber,
			IsActive:    true,
		}
		if err := s.employeeRepo.WithTx(tx).Create(ctx, profile); err != nil {
			return mapRepositoryError(err)
		}

		v := profile.ID.String()
		employeeID = &v
		return nil
	})
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)

	return AuthResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		Role:       user.Role,
		FullName:   req.FullName,
		EmployeeID: employeeID,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	resp := s.buildResponse(ctx, user)

	accessToken, err := s.generateToken(user.ID.String(), user.Role, resp.CompanyID, resp.EmployeeID, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), user.Role, resp.CompanyID, resp.EmployeeID, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, resp, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	// Profile claims are resolved fresh on every refresh so an employee
	// approved after login picks up the employee scope without re-auth.
	resp := s.buildResponse(ctx, user)

	newAccessToken, err := s.generateToken(user.ID.String(), user.Role, resp.CompanyID, resp.EmployeeID, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user.ID.String(), user.Role, resp.CompanyID, resp.EmployeeID, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, resp, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := s.buildResponse(ctx, user)
	return &resp, nil
}

// buildResponse attaches the profile IDs that scope middleware reads from
// claims. A missing profile is not an error: owners before company creation
// and employees before approval simply have no scope yet.
func (s *service) buildResponse(ctx context.Context, user *User) AuthResponse {
	resp := AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}

	switch user.Role {
	case RoleCompany:
		if c, err := s.companyRepo.FindByOwnerUser(ctx, user.ID.String()); err == nil && c.IsActive {
			v := c.ID.String()
			resp.CompanyID = &v
			resp.FullName = c.Name
		}
	case RoleEmployee:
		if e, err := s.employeeRepo.FindByUser(ctx, user.ID.String()); err == nil {
			v := e.ID.String()
			resp.EmployeeID = &v
			resp.FullName = e.FullName
			if e.CompanyID != nil {
				cv := e.CompanyID.String()
				resp.CompanyID = &cv
			}
		}
	}

	return resp
}

func (s *service) generateToken(userID, role string, companyID, employeeID *string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}
	if companyID != nil {
		claims["company_id"] = *companyID
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
