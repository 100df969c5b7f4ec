package dto

import (
	"fmt"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator. Each request DTO exposes an
// explicit Validate method that runs tag validation first and then the
// cross-field rules the tags cannot express (date ordering, amount
// reconciliation). Services assume inputs were validated at the boundary.
var validate = validator.New()

// runTagValidation maps validator errors onto the app error taxonomy.
func runTagValidation(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}
