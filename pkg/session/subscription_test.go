package session

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tradebinder/tradebinder/pkg/types"
)

var _ = Describe("Subscriptions", func() {
	var (
		fb    *fakeBackend
		store *Store
	)

	BeforeEach(func() {
		fb = newFakeBackend()
		store = New(fb, types.User{ID: "u1", Username: "ashk"})
	})

	Context("when state changes", func() {
		It("notifies each subscriber exactly once per change", func() {
			calls := 0
			unsubscribe := store.Subscribe(func(Snapshot) {
				calls++
			})
			defer unsubscribe()

			location := "Pallet Town"
			store.ApplyUserPatch(types.UserPatch{Location: &location})
			Expect(calls).To(Equal(1))

			displayName := "Red"
			store.ApplyUserPatch(types.UserPatch{DisplayName: &displayName})
			Expect(calls).To(Equal(2))
		})

		It("delivers the post-change snapshot as the payload", func() {
			var received Snapshot
			unsubscribe := store.Subscribe(func(snap Snapshot) {
				received = snap
			})
			defer unsubscribe()

			location := "Pallet Town"
			store.ApplyUserPatch(types.UserPatch{Location: &location})

			Expect(received.CurrentUser.Location).To(Equal("Pallet Town"))
			Expect(received.CurrentUser.Username).To(Equal("ashk"))
			Expect(received.Collections).NotTo(BeNil())
			Expect(received.Inventory).NotTo(BeNil())
		})

		It("notifies subscribers in registration order", func() {
			var order []string
			unsubA := store.Subscribe(func(Snapshot) {
				order = append(order, "first")
			})
			defer unsubA()
			unsubB := store.Subscribe(func(Snapshot) {
				order = append(order, "second")
			})
			defer unsubB()

			location := "Pallet Town"
			store.ApplyUserPatch(types.UserPatch{Location: &location})

			Expect(order).To(Equal([]string{"first", "second"}))
		})

		It("allows a callback to read back into the store", func() {
			var seen int
			unsubscribe := store.Subscribe(func(Snapshot) {
				seen = len(store.Snapshot().Collections)
			})
			defer unsubscribe()

			fb.FetchUserCollectionsFn = func(context.Context, string) ([]types.Collection, error) {
				return []types.Collection{{ID: "c1"}}, nil
			}
			Expect(store.LoadCollections(context.Background())).To(Succeed())
			Expect(seen).To(Equal(1))
		})
	})

	Context("when unsubscribing", func() {
		It("stops delivering notifications", func() {
			calls := 0
			unsubscribe := store.Subscribe(func(Snapshot) {
				calls++
			})

			location := "Pallet Town"
			store.ApplyUserPatch(types.UserPatch{Location: &location})
			unsubscribe()
			store.ApplyUserPatch(types.UserPatch{Location: &location})

			Expect(calls).To(Equal(1))
		})

		It("is a no-op when called twice", func() {
			stillCalled := 0
			unsubA := store.Subscribe(func(Snapshot) {})
			unsubB := store.Subscribe(func(Snapshot) {
				stillCalled++
			})
			defer unsubB()

			unsubA()
			unsubA()

			location := "Pallet Town"
			store.ApplyUserPatch(types.UserPatch{Location: &location})
			Expect(stillCalled).To(Equal(1))
		})

		It("keeps the remaining subscribers intact", func() {
			var order []string
			unsubA := store.Subscribe(func(Snapshot) {
				order = append(order, "first")
			})
			unsubB := store.Subscribe(func(Snapshot) {
				order = append(order, "second")
			})
			defer unsubB()

			unsubA()

			location := "Pallet Town"
			store.ApplyUserPatch(types.UserPatch{Location: &location})
			Expect(order).To(Equal([]string{"second"}))
		})
	})

	Context("on a read-only operation", func() {
		It("does not notify", func() {
			calls := 0
			unsubscribe := store.Subscribe(func(Snapshot) {
				calls++
			})
			defer unsubscribe()

			store.CardInCollection(context.Background(), "c1", "p1")
			_ = store.Snapshot()

			Expect(calls).To(BeZero())
		})
	})
})
