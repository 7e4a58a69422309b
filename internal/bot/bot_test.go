// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	ircmsg "gopkg.in/irc.v4"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/mock"
	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/models"
)

// fakeChat records outbound messages and joins.
type fakeChat struct {
	privmsgs []string
	joins    []string
}

func (f *fakeChat) Privmsg(_ context.Context, target, text string) error {
	f.privmsgs = append(f.privmsgs, target+" <- "+text)
	return nil
}

func (f *fakeChat) Join(_ context.Context, channel string) error {
	f.joins = append(f.joins, channel)
	return nil
}

type fakePuller struct {
	changed []string
	err     error
	calls   int
}

func (f *fakePuller) Pull(context.Context) ([]string, error) {
	f.calls++
	return f.changed, f.err
}

func command(channel, text, account string) *ircmsg.Message {
	msg := &ircmsg.Message{
		Command: "PRIVMSG",
		Prefix:  &ircmsg.Prefix{Name: "somenick"},
		Params:  []string{channel, text},
	}
	if account != "" {
		msg.Tags = ircmsg.Tags{"account": account}
	}
	return msg
}

func newTestBot(t *testing.T, puller Puller) (*Bot, *fakeChat, *mock.MockChannelSyncService) {
	t.Helper()

	chat := &fakeChat{}
	syncs := mock.NewMockChannelSyncService(gomock.NewController(t))
	cfg := &config.StructuredConfig{
		Owners:  []string{"legok"},
		Trusted: []string{"quiddity", "ashley"},
	}

	return NewBot(chat, syncs, puller, cfg, logger.Nop()), chat, syncs
}

func TestIssync(t *testing.T) {
	b, chat, syncs := newTestBot(t, &fakePuller{})

	syncs.EXPECT().
		SyncChannel(gomock.Any(), "#wikimedia-tech").
		Return(models.SyncReport{
			Lines: []string{"Syncing #wikimedia-tech", "Set /cs flags #wikimedia-tech ashley +Aiotv"},
		}, nil)

	b.dispatch(context.Background(), command("#wikimedia-tech", "!issync", "quiddity"))

	assert.Equal(t, []string{
		"#wikimedia-tech <- Syncing #wikimedia-tech",
		"#wikimedia-tech <- Set /cs flags #wikimedia-tech ashley +Aiotv",
	}, chat.privmsgs)
}

func TestIssync_OwnerIsTrusted(t *testing.T) {
	b, _, syncs := newTestBot(t, &fakePuller{})

	syncs.EXPECT().
		SyncChannel(gomock.Any(), "#wikimedia-tech").
		Return(models.SyncReport{}, nil)

	b.dispatch(context.Background(), command("#wikimedia-tech", "!issync", "legok"))
}

func TestIssync_UntrustedIgnored(t *testing.T) {
	b, chat, _ := newTestBot(t, &fakePuller{})

	b.dispatch(context.Background(), command("#wikimedia-tech", "!issync", "stranger"))
	b.dispatch(context.Background(), command("#wikimedia-tech", "!issync", ""))

	assert.Empty(t, chat.privmsgs)
}

func TestIssync_SyncInProgress(t *testing.T) {
	b, chat, syncs := newTestBot(t, &fakePuller{})

	syncs.EXPECT().
		SyncChannel(gomock.Any(), "#wikimedia-tech").
		Return(models.SyncReport{}, service.ErrSyncInProgress)

	b.dispatch(context.Background(), command("#wikimedia-tech", "!issync", "ashley"))

	assert.Equal(t, []string{"#wikimedia-tech <- A sync is already in progress for #wikimedia-tech"}, chat.privmsgs)
}

func TestIssync_Failure(t *testing.T) {
	b, chat, syncs := newTestBot(t, &fakePuller{})

	syncs.EXPECT().
		SyncChannel(gomock.Any(), "#wikimedia-tech").
		Return(models.SyncReport{Lines: []string{"Syncing #wikimedia-tech"}}, errors.New("connection reset"))

	b.dispatch(context.Background(), command("#wikimedia-tech", "!issync", "ashley"))

	require.Len(t, chat.privmsgs, 2)
	assert.Equal(t, "#wikimedia-tech <- Sync of #wikimedia-tech failed: connection reset", chat.privmsgs[1])
}

func TestIsspull(t *testing.T) {
	puller := &fakePuller{changed: []string{"#mediawiki", "#wikimedia-tech"}}
	b, chat, syncs := newTestBot(t, puller)

	syncs.EXPECT().
		SyncChannel(gomock.Any(), "#mediawiki").
		Return(models.SyncReport{Lines: []string{"No flag updates for #mediawiki"}}, nil)
	syncs.EXPECT().
		SyncChannel(gomock.Any(), "#wikimedia-tech").
		Return(models.SyncReport{Lines: []string{"Syncing #wikimedia-tech"}}, nil)

	b.dispatch(context.Background(), command("#wikimedia-ops", "!isspull", "quiddity"))

	assert.Equal(t, 1, puller.calls)
	// report lines for every changed channel land in the channel the
	// command was said in
	assert.Equal(t, []string{
		"#wikimedia-ops <- No flag updates for #mediawiki",
		"#wikimedia-ops <- Syncing #wikimedia-tech",
	}, chat.privmsgs)
}

func TestIsspull_NoChanges(t *testing.T) {
	b, chat, _ := newTestBot(t, &fakePuller{})

	b.dispatch(context.Background(), command("#wikimedia-ops", "!isspull", "quiddity"))

	assert.Equal(t, []string{"#wikimedia-ops <- No channel configuration changes"}, chat.privmsgs)
}

func TestIsspull_Error(t *testing.T) {
	b, chat, _ := newTestBot(t, &fakePuller{err: errors.New("could not resolve host")})

	b.dispatch(context.Background(), command("#wikimedia-ops", "!isspull", "quiddity"))

	assert.Equal(t, []string{"#wikimedia-ops <- Pull failed: could not resolve host"}, chat.privmsgs)
}

func TestIsstrust(t *testing.T) {
	b, chat, _ := newTestBot(t, &fakePuller{})

	b.dispatch(context.Background(), command("#wikimedia-tech", "!isstrust", "ashley"))

	assert.Equal(t, []string{"#wikimedia-tech <- I trust: quiddity, ashley"}, chat.privmsgs)
}

func TestDispatch_IgnoresNonCommands(t *testing.T) {
	b, chat, _ := newTestBot(t, &fakePuller{})

	b.dispatch(context.Background(), command("#wikimedia-tech", "hello there", "quiddity"))
	b.dispatch(context.Background(), command("ircservserv", "!issync", "quiddity"))
	b.dispatch(context.Background(), &ircmsg.Message{Command: "NOTICE", Params: []string{"#wikimedia-tech", "!issync"}})

	assert.Empty(t, chat.privmsgs)
}

func TestJoinChannels(t *testing.T) {
	dir := t.TempDir()
	writeChannelFile(t, dir, "wikimedia-tech")
	writeChannelFile(t, dir, "mediawiki")

	b, chat, _ := newTestBot(t, &fakePuller{})
	b.cfg.Channels.Dir = dir

	require.NoError(t, b.JoinChannels(context.Background()))
	assert.Equal(t, []string{"#mediawiki", "#wikimedia-tech"}, chat.joins)
}

func writeChannelFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "channels"), 0o755))
	contents := "founders = [\"ircservserv-wm\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "channels", name+".toml"), []byte(contents), 0o644))
}
