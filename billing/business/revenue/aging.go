package revenue

import (
	"time"

	"github.com/carelane/hospital-billing/billing/model"
)

// AgingBucket places a receivable by the whole days elapsed between submittedAt and asOf.
func AgingBucket(submittedAt, asOf time.Time) model.AgingBucket {
	days := int(asOf.Sub(submittedAt).Hours() / 24)
	switch {
	case days <= 30:
		return model.AgingBucketCurrent
	case days <= 60:
		return model.AgingBucket31To60
	case days <= 90:
		return model.AgingBucket61To90
	case days <= 120:
		return model.AgingBucket91To120
	default:
		return model.AgingBucketOver120
	}
}
