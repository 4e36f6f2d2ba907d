package utils

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/mystery-message-backend/internal/models"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	"github.com/ArowuTest/mystery-message-backend/internal/validation"
)

// ImportResult summarises one CSV import run
type ImportResult struct {
	TotalRows int      `json:"totalRows"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// CSVImporter bulk-creates verified accounts from a CSV export
type CSVImporter struct {
	userRepo   repositories.UserRepository
	bcryptCost int
}

// NewCSVImporter creates a new CSVImporter
func NewCSVImporter(userRepo repositories.UserRepository) *CSVImporter {
	return &CSVImporter{userRepo: userRepo, bcryptCost: bcrypt.DefaultCost}
}

// ImportAccounts reads a header row followed by one account per row. Username,
// email and password columns are required; an optional accepting column
// sets the initial acceptance flag (default true). Rows that fail validation
// or collide with an existing account are reported and skipped.
func (i *CSVImporter) ImportAccounts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	usernameIdx := findColumnIndex(header, []string{"username", "user", "handle"})
	emailIdx := findColumnIndex(header, []string{"email", "e-mail", "email address"})
	passwordIdx := findColumnIndex(header, []string{"password", "pass"})
	acceptingIdx := findColumnIndex(header, []string{"accepting", "isacceptingmessages", "accept messages"})

	if usernameIdx == -1 || emailIdx == -1 || passwordIdx == -1 {
		return nil, errors.New("username, email and password columns are required")
	}

	result := &ImportResult{Errors: []string{}}
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		result.TotalRows++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		req := models.SignUpRequest{
			Username: cell(row, usernameIdx),
			Email:    cell(row, emailIdx),
			Password: cell(row, passwordIdx),
		}
		if fields := validation.SignUp(req); len(fields) > 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", result.TotalRows, fields[0].Message))
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), i.bcryptCost)
		if err != nil {
			return result, fmt.Errorf("hash password: %w", err)
		}

		user := &models.User{
			Username:            req.Username,
			Email:               req.Email,
			Password:            string(hash),
			IsVerified:          true,
			IsAcceptingMessages: parseBool(cell(row, acceptingIdx), true),
			Messages:            []models.Message{},
		}
		if err := i.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: username or email already exists", result.TotalRows))
				continue
			}
			return result, fmt.Errorf("row %d: %w", result.TotalRows, err)
		}
		result.Created++
	}

	return result, nil
}

// findColumnIndex finds the index of the first header matching any alias, ignoring case
func findColumnIndex(header []string, aliases []string) int {
	for i, column := range header {
		column = strings.ToLower(strings.TrimSpace(column))
		for _, alias := range aliases {
			if column == alias {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(s string, fallback bool) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true
	case "no", "n", "false", "0":
		return false
	default:
		return fallback
	}
}
