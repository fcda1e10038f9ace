package revenue

import (
	"fmt"
	"strings"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/model"
)

// Base DRG per principal diagnosis chapter. The three consecutive codes starting at the
// base are the with-MCC, with-CC and without-CC/MCC variants.
var drgFamilyByChapter = map[byte]int{
	'I': 291, // heart failure and shock
	'J': 193, // simple pneumonia and pleurisy
	'K': 377, // GI hemorrhage
	'S': 957, // multiple significant trauma
	'T': 957,
}

const ungroupableDRG = "DRG-999"

// ClassifyDRG assigns a diagnosis related group from the principal diagnosis and the
// encounter's complexity.
func ClassifyDRG(encounter *model.Encounter) (string, error) {
	if len(encounter.DiagnosisCodes) == 0 {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: "at least one diagnosis code is required"}
	}

	principal := strings.ToUpper(strings.TrimSpace(encounter.DiagnosisCodes[0]))
	if principal == "" {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: "principal diagnosis code is blank"}
	}

	base, ok := drgFamilyByChapter[principal[0]]
	if !ok {
		return ungroupableDRG, nil
	}

	secondary := len(encounter.DiagnosisCodes) - 1
	switch {
	case secondary >= 3 || encounter.LengthOfStayDays > 7:
		// major complication or comorbidity
	case secondary >= 1 || encounter.LengthOfStayDays > 3:
		base++
	default:
		base += 2
	}

	return fmt.Sprintf("DRG-%03d", base), nil
}
