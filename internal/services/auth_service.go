package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rikky/internal/models"
	"rikky/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles employee registration, login and token validation.
type AuthService struct {
	employeeRepo repositories.EmployeeRepository
	jwtSecret    []byte
	tokenTTL     time.Duration // Duration for which JWT is valid
}

// LoginResult is returned to an employee who logged in successfully.
type LoginResult struct {
	ID       string `json:"id"`
	Username string `json:"userName"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo repositories.EmployeeRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		employeeRepo: employeeRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

// Register hashes the employee's password and saves the employee.
func (s *AuthService) Register(ctx context.Context, employee *models.Employee) error {
	if err := validateStruct(employee); err != nil {
		return err
	}
	if len(employee.Password) < 6 {
		return NewDomainError(KindValidation, "password must be at least 6 characters")
	}
	existing, err := s.employeeRepo.GetByUsername(ctx, employee.Username)
	if err == nil && existing != nil {
		return NewDomainError(KindConflict, "username '%s' already taken", employee.Username)
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(employee.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	employee.Password = string(hashedPassword)

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return fmt.Errorf("failed to register employee: %w", err)
	}
	return nil
}

// Login authenticates an employee and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if employee.Status == models.StatusDisabled {
		return nil, NewDomainError(KindUnauthorized, "account is disabled")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": employee.ID,
		"username":    employee.Username,
		"exp":         now.Add(s.tokenTTL).Unix(),
		"iat":         now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		ID:       employee.ID,
		Username: employee.Username,
		Name:     employee.Name,
		Token:    tokenString,
	}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, NewDomainError(KindUnauthorized, "invalid token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, NewDomainError(KindUnauthorized, "invalid token")
	}
	if id, _ := claims["employee_id"].(string); id == "" {
		return nil, NewDomainError(KindUnauthorized, "token carries no employee")
	}
	return claims, nil
}

// Authenticate validates a token and loads its employee. Tokens of
// employees that were removed or disabled since login are rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Employee, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	employeeID, _ := claims["employee_id"].(string)
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError(KindUnauthorized, "employee %s no longer exists", employeeID)
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if employee.Status == models.StatusDisabled {
		return nil, NewDomainError(KindUnauthorized, "account is disabled")
	}
	return employee, nil
}
