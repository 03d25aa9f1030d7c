package transport

import "lead_console/platform/apperr"

var errActiveWithoutDate = apperr.Validation("an active follow-up requires a date")
