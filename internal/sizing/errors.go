package sizing

// FailureKind classifies a terminal recommendation outcome.
type FailureKind string

const (
	KindMeasurementsNotFound       FailureKind = "MEASUREMENTS_NOT_FOUND"
	KindUpstreamProductUnavailable FailureKind = "UPSTREAM_PRODUCT_UNAVAILABLE"
	KindNonClothingProduct         FailureKind = "NON_CLOTHING_PRODUCT"
	KindSizeStandardUnavailable    FailureKind = "SIZE_STANDARD_UNAVAILABLE"
	KindIndeterminateSize          FailureKind = "INDETERMINATE_SIZE"
	KindInternal                   FailureKind = "INTERNAL_ERROR"
)

// NotAvailable is the size label carried by every failure result.
const NotAvailable = "N/A"

// Failure describes why no size could be recommended.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return string(f.Kind) + ": " + f.Message
}

// FailureResult builds the terminal result for a failure kind.
func FailureResult(kind FailureKind, message string, report []string) Result {
	if report == nil {
		report = []string{}
	}
	return Result{
		RecommendedSize: NotAvailable,
		SizePercentages: Distribution{},
		Confidence:      0,
		FitMessage:      message,
		DetailedReport:  report,
		Failure:         &Failure{Kind: kind, Message: message},
	}
}
