package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/pkg/i18n"
)

func TestTranslate(t *testing.T) {
	t.Run("Status Labels", func(t *testing.T) {
		assert.Equal(t, "Pending", i18n.Translate("en", "APPLICATION_STATUS.PENDING"))
		assert.Equal(t, "Under Review", i18n.Translate("en", "APPLICATION_STATUS.REVIEWING"))
		assert.Equal(t, "Interview Stage", i18n.Translate("en", "APPLICATION_STATUS.INTERVIEW"))
		assert.Equal(t, "Offer Extended", i18n.Translate("en", "APPLICATION_STATUS.OFFERED"))
		assert.Equal(t, "Not Selected", i18n.Translate("en", "APPLICATION_STATUS.REJECTED"))
		assert.Equal(t, "Accepted", i18n.Translate("en", "APPLICATION_STATUS.ACCEPTED"))
		assert.Equal(t, "Tahap Wawancara", i18n.Translate("id", "APPLICATION_STATUS.INTERVIEW"))
	})

	t.Run("Format", func(t *testing.T) {
		msg := i18n.Format("en", "NOTIFICATION.APPLICATION_STATUS_UPDATED_MESSAGE", "Backend Engineer", "Offer Extended")
		assert.Equal(t, `Your application for Backend Engineer is now "Offer Extended"`, msg)
	})

	t.Run("Fallback", func(t *testing.T) {
		assert.Equal(t, "New Application", i18n.Translate("fr", "NOTIFICATION.APPLICATION_RECEIVED_TITLE"))
		assert.Equal(t, "NON_EXISTENT_KEY", i18n.Translate("id", "NON_EXISTENT_KEY"))
	})
}

func TestLoadTranslations(t *testing.T) {
	fsys := fstest.MapFS{
		"xx/messages.yaml": &fstest.MapFile{Data: []byte("GREETING:\n  HELLO: Ahoy\n")},
		"README.md":        &fstest.MapFile{Data: []byte("ignored")},
	}

	require.NoError(t, i18n.LoadTranslations(fsys))
	assert.Equal(t, "Ahoy", i18n.Translate("xx", "GREETING.HELLO"))

	broken := fstest.MapFS{
		"yy/messages.yaml": &fstest.MapFile{Data: []byte("- not: [a, map")},
	}
	assert.Error(t, i18n.LoadTranslations(broken))
}
