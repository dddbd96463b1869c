// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

//go:build integration

package integration

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/tradelens/tradelens/internal/biometric"
	"github.com/tradelens/tradelens/internal/session"
)

// scriptedGateway reports a fixed device capability.
type scriptedGateway struct {
	hardware   bool
	enrolled   bool
	modalities []biometric.Modality
}

func (g *scriptedGateway) HasHardware(context.Context) (bool, error) { return g.hardware, nil }
func (g *scriptedGateway) Enrolled(context.Context) (bool, error)    { return g.enrolled, nil }
func (g *scriptedGateway) SupportedModalities(context.Context) ([]biometric.Modality, error) {
	return g.modalities, nil
}

// scriptedChallenger resolves every challenge with a fixed result.
type scriptedChallenger struct {
	result biometric.ChallengeResult
}

func (c *scriptedChallenger) Challenge(context.Context, string, string) (biometric.ChallengeResult, error) {
	return c.result, nil
}

// sessionEnv is a session core wired to a real file store, simulating one
// app process. Building a second env over the same directory simulates an
// app restart.
type sessionEnv struct {
	store      *session.Store
	storage    *session.FileStore
	challenger *scriptedChallenger
	dir        string
}

func newSessionEnv(dir string) *sessionEnv {
	logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))

	storage, err := session.NewFileStore(dir)
	Expect(err).NotTo(HaveOccurred())

	gateway := &scriptedGateway{
		hardware:   true,
		enrolled:   true,
		modalities: []biometric.Modality{biometric.ModalityFace, biometric.ModalityFingerprint},
	}
	challenger := &scriptedChallenger{result: biometric.ChallengeResult{OK: true}}

	prober := biometric.NewProber(gateway, logger)
	authenticator, err := biometric.NewAuthenticator(prober, challenger, logger)
	Expect(err).NotTo(HaveOccurred())

	backend, err := session.NewMockBackend(0)
	Expect(err).NotTo(HaveOccurred())

	store, err := session.NewStore(session.Config{
		Backend:       backend,
		Authenticator: authenticator,
		Storage:       storage,
		Logger:        logger,
	})
	Expect(err).NotTo(HaveOccurred())

	return &sessionEnv{
		store:      store,
		storage:    storage,
		challenger: challenger,
		dir:        dir,
	}
}

var _ = Describe("Session lifecycle", func() {
	var (
		ctx context.Context
		dir string
		env *sessionEnv
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		env = newSessionEnv(dir)
		env.store.CheckAuthStatus(ctx)
	})

	Describe("password login", func() {
		It("persists the session across a restart", func() {
			user, err := env.store.Login(ctx, "trader@example.com", "secret1")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email).To(Equal("trader@example.com"))

			restarted := newSessionEnv(dir)
			restarted.store.CheckAuthStatus(ctx)

			snap := restarted.store.Snapshot()
			Expect(snap.IsAuthenticated).To(BeTrue())
			Expect(snap.User).NotTo(BeNil())
			Expect(snap.User.Email).To(Equal("trader@example.com"))
			Expect(snap.Token).NotTo(BeEmpty())
			Expect(session.Gate(snap)).To(Equal(session.RouteHome))
		})

		It("routes to login when no session was ever persisted", func() {
			snap := env.store.Snapshot()
			Expect(snap.IsAuthenticated).To(BeFalse())
			Expect(session.Gate(snap)).To(Equal(session.RouteLogin))
		})
	})

	Describe("logout", func() {
		It("clears the persisted record so a restart starts logged out", func() {
			_, err := env.store.Login(ctx, "trader@example.com", "secret1")
			Expect(err).NotTo(HaveOccurred())

			env.store.Logout(ctx)

			restarted := newSessionEnv(dir)
			restarted.store.CheckAuthStatus(ctx)

			snap := restarted.store.Snapshot()
			Expect(snap.IsAuthenticated).To(BeFalse())
			Expect(snap.User).To(BeNil())
			Expect(session.Gate(snap)).To(Equal(session.RouteLogin))
		})
	})

	Describe("biometric login", func() {
		It("signs in and enables the biometric opt-in", func() {
			user, err := env.store.BiometricLogin(ctx, biometric.ModalityFace)
			Expect(err).NotTo(HaveOccurred())
			Expect(user).NotTo(BeNil())

			snap := env.store.Snapshot()
			Expect(snap.IsAuthenticated).To(BeTrue())
			Expect(snap.BiometricEnabled).To(BeTrue())
		})

		It("reuses the identity persisted by a prior password login", func() {
			_, err := env.store.Login(ctx, "trader@example.com", "secret1")
			Expect(err).NotTo(HaveOccurred())

			restarted := newSessionEnv(dir)
			restarted.store.CheckAuthStatus(ctx)

			user, err := restarted.store.BiometricLogin(ctx, biometric.ModalityFace)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email).To(Equal("trader@example.com"))
		})

		It("treats a dismissed prompt as a quiet non-success", func() {
			env.challenger.result = biometric.ChallengeResult{Code: "user_cancel"}

			_, err := env.store.BiometricLogin(ctx, biometric.ModalityFace)
			Expect(err).To(MatchError(session.ErrBiometricCancelled))

			snap := env.store.Snapshot()
			Expect(snap.Err).To(BeEmpty())
			Expect(snap.IsAuthenticated).To(BeFalse())
		})
	})

	Describe("restore resilience", func() {
		It("degrades a corrupt persisted record to logged out", func() {
			_, err := env.store.Login(ctx, "trader@example.com", "secret1")
			Expect(err).NotTo(HaveOccurred())

			recordPath := filepath.Join(dir, session.StorageKey+".json")
			Expect(os.WriteFile(recordPath, []byte("{not json"), 0o600)).To(Succeed())

			restarted := newSessionEnv(dir)
			restarted.store.CheckAuthStatus(ctx)

			snap := restarted.store.Snapshot()
			Expect(snap.IsAuthenticated).To(BeFalse())
			Expect(snap.IsCheckingAuth).To(BeFalse())
			Expect(session.Gate(snap)).To(Equal(session.RouteLogin))
		})
	})
})
