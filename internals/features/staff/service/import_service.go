package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	classroommodel "collabsphere_backend/internals/features/classrooms/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

const defaultImportPassword = "123456"

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ImportReport summarizes a bulk import run.
type ImportReport struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// Report renders the run as a plain text summary.
func (r ImportReport) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "created: %d\nskipped: %d\n", r.Created, r.Skipped)
	for _, e := range r.Errors {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// ImportUsers reads an xlsx with columns email, full name, role, optional
// password. Rows with an already-registered email are skipped; bad rows are
// collected, never aborting the run.
func (s *Service) ImportUsers(ctx context.Context, actor policy.Actor, r io.Reader) (ImportReport, error) {
	if !actor.HasRole(constants.StaffAndAbove...) {
		return ImportReport{}, helper.Forbidden("Only staff can import users")
	}
	rows, err := readSheet(r)
	if err != nil {
		return ImportReport{}, err
	}

	var report ImportReport
	for i, row := range rows {
		line := i + 2 // 1-based, after the header
		if len(row) < 3 {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: expected at least email, full name, role", line))
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row[0]))
		fullName := strings.TrimSpace(row[1])
		role := strings.ToUpper(strings.TrimSpace(row[2]))
		password := defaultImportPassword
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			password = strings.TrimSpace(row[3])
		}

		if email == "" || fullName == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: email and full name are required", line))
			continue
		}
		if !constants.IsValidRole(role) {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: unknown role %q", line, role))
			continue
		}

		var count int64
		if err := s.db.WithContext(ctx).Model(&usermodel.UserModel{}).
			Where("user_email = ?", email).Count(&count).Error; err != nil {
			return report, err
		}
		if count > 0 {
			report.Skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return report, err
		}
		user := usermodel.UserModel{
			UserEmail:    email,
			UserPassword: string(hash),
			UserFullName: fullName,
			UserRole:     role,
			UserActive:   true,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		report.Created++
	}
	return report, nil
}

// ImportClassrooms reads an xlsx with columns name, code, lecturer email.
// The lecturer must exist with role LECTURER; duplicate codes are skipped.
func (s *Service) ImportClassrooms(ctx context.Context, actor policy.Actor, r io.Reader) (ImportReport, error) {
	if !actor.HasRole(constants.StaffAndAbove...) {
		return ImportReport{}, helper.Forbidden("Only staff can import classrooms")
	}
	rows, err := readSheet(r)
	if err != nil {
		return ImportReport{}, err
	}

	var report ImportReport
	for i, row := range rows {
		line := i + 2
		if len(row) < 3 {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: expected name, code, lecturer email", line))
			continue
		}
		name := strings.TrimSpace(row[0])
		code := strings.TrimSpace(row[1])
		lecturerEmail := strings.ToLower(strings.TrimSpace(row[2]))
		if name == "" || code == "" || lecturerEmail == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: name, code and lecturer email are required", line))
			continue
		}

		var lecturer usermodel.UserModel
		if err := s.db.WithContext(ctx).
			First(&lecturer, "user_email = ?", lecturerEmail).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				report.Errors = append(report.Errors, fmt.Sprintf("row %d: lecturer %s not found", line, lecturerEmail))
				continue
			}
			return report, err
		}
		if lecturer.UserRole != constants.RoleLecturer {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %s is not a lecturer", line, lecturerEmail))
			continue
		}

		var count int64
		if err := s.db.WithContext(ctx).Model(&classroommodel.ClassroomModel{}).
			Where("classroom_code = ?", code).Count(&count).Error; err != nil {
			return report, err
		}
		if count > 0 {
			report.Skipped++
			continue
		}

		classroom := classroommodel.ClassroomModel{
			ClassroomName:       name,
			ClassroomCode:       code,
			ClassroomLecturerID: lecturer.UserID,
		}
		if err := s.db.WithContext(ctx).Create(&classroom).Error; err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		report.Created++
	}
	return report, nil
}

// readSheet returns the data rows of the first sheet, header excluded.
func readSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, helper.Validation("Could not read xlsx file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, helper.Validation("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, helper.Validation("Sheet has no data rows")
	}
	return rows[1:], nil
}
