package errors

// User-facing messages
const (
	MsgUnknownListing      = "هذه القائمة غير موجودة."
	MsgInvalidParameters   = "معايير البحث غير صالحة. يرجى التحقق منها والمحاولة مرة أخرى."
	MsgWrongPaginationMode = "هذه القائمة لا تدعم تحميل المزيد."
	MsgListingNotLoaded    = "يرجى تحميل القائمة أولاً."
	MsgServiceUnavailable  = "الخدمة غير متاحة حالياً. يرجى المحاولة بعد قليل."
	MsgForbidden           = "غير مسموح بهذه العملية."
	MsgRateLimited         = "طلبات كثيرة جداً. يرجى الانتظار قليلاً ثم المحاولة مرة أخرى."
	MsgInternalError       = "حدث خطأ ما. يرجى المحاولة لاحقاً."

	// MsgLoadFailed is the inline retry prompt shown under a listing when a fetch fails.
	MsgLoadFailed = "تعذر التحميل. أعد المحاولة"
)
