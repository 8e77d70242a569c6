package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/outlaw/shop"
)

// NewVendorUI builds the vendor menu from the current offers. It is rebuilt
// whenever the stock or the player's coins change.
func NewVendorUI(a *App) *ebitenui.UI {
	face := uiFace()
	coins := a.sim.Player().Coins
	children := []widget.PreferredSizeLocateableWidget{
		menuTitle(fmt.Sprintf("Vendor  (coins: %d)", coins), face),
	}
	for n, offer := range a.sim.VendorOffers() {
		t := offer.Type
		label := fmt.Sprintf("%d. %s  $%d", n+1, t, offer.Price)
		children = append(children, menuButton(label, face, func() { a.buy(t) }))
	}
	children = append(children, menuButton("Leave (L)", face, func() { a.sim.LeaveVendor() }))
	return centeredPanel(a.width/2, a.height/2, children...)
}

// offerAt maps a 1-based number key to an offer.
func offerAt(offers []shop.ItemConfig, n int) (shop.ItemType, bool) {
	if n < 1 || n > len(offers) {
		return "", false
	}
	return offers[n-1].Type, true
}
