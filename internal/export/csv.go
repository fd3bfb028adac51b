package export

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"voucher-hub/internal/model"
)

// CSVHeader is the first line of every voucher export.
const CSVHeader = "id,code,campaignId"

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9]`)

// VouchersToCSV renders vouchers as id,code,campaignId lines joined by "\n".
// Fields are written verbatim; ids are uuids and codes are base36 behind an
// operator-chosen prefix, so no quoting is applied. There is no trailing newline.
func VouchersToCSV(vouchers []model.Voucher) string {
	var b strings.Builder
	b.Grow(len(CSVHeader) + len(vouchers)*96)
	b.WriteString(CSVHeader)

	for _, v := range vouchers {
		b.WriteByte('\n')
		b.WriteString(v.ID.String())
		b.WriteByte(',')
		b.WriteString(v.Code)
		b.WriteByte(',')
		b.WriteString(v.CampaignID.String())
	}

	return b.String()
}

// Filename returns the attachment name for a campaign's voucher export.
// Lower-cased name characters outside [a-z0-9] become underscores.
func Filename(name string) string {
	return "vouchers-" + unsafeFilenameChars.ReplaceAllString(strings.ToLower(name), "_") + ".csv"
}

// IDFilename returns the attachment name for an export whose campaign is
// unknown. The canonical uuid text is kept as is.
func IDFilename(id uuid.UUID) string {
	return "vouchers-" + id.String() + ".csv"
}
