// Package model defines the records autoartists works on.
//
// # Item
//
// Item is one track in the library, as read from its tags:
//
//	item := &model.Item{
//	    Path:   "/music/Beyoncé/Drunk in Love.mp3",
//	    Artist: "Beyoncé feat. JAY-Z",
//	    Title:  "Drunk in Love",
//	}
//	fmt.Println(item)              // Beyoncé feat. JAY-Z - Drunk in Love
//	fmt.Println(item.HasArtists()) // false
//
// # Change
//
// Change pairs an item with the artists list computed for it. Changes are
// produced by planning and consumed when tags are written back:
//
//	change := &model.Change{Item: item, Artists: []string{"Beyoncé", "JAY-Z"}}
//	fmt.Println(change.Before()) // []
package model
