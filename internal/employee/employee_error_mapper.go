package employee

import (
	employeeerrors "hris-dashboard/internal/employee/errors"
	"hris-dashboard/internal/shared/connection"
)

// EmailConstraint only covers rows that are not soft-deleted.
const EmailConstraint = "uq_employee_email_live"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if connection.IsNotFound(err) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if connection.IsUniqueViolation(err, EmailConstraint) || connection.IsUniqueViolation(err, "") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	return err
}
