/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

// Lifecycle listeners. Dispatch is synchronous and in registration order;
// the tree is always structurally consistent at the point a listener runs.
// Listeners must not call mutating Manager methods from inside a
// notification.

// EmptyBoardListener is notified when the last pane of the last container is
// closed. The container itself survives; the board never drops below one
// leaf.
type EmptyBoardListener interface {
	BoardEmptied()
}

// ActivePaneListener is notified whenever the active pane changes: a pane is
// opened or selected in the active container, a move lands a pane somewhere
// new, or focus shifts to another container.
type ActivePaneListener interface {
	PaneActivated(container ContainerID, pane PaneID)
}

// ClosingPaneListener is notified just before a pane leaves its container,
// both for closes and for moves. At that point the pane is still present and
// the tree untouched.
type ClosingPaneListener interface {
	PaneClosing(container ContainerID, pane PaneID)
}

// SplitListener is notified after a container is created by a split or
// destroyed by a collapse.
type SplitListener interface {
	SplitOpened(container ContainerID)
	SplitClosed(container ContainerID)
}

// MenuBuilder contributes items to a container menu while it is being
// assembled. Builders run after the movement entries are in place.
type MenuBuilder interface {
	BuildContainerMenu(menu *Menu)
}

// MenuOpenListener sees the finished menu right before it is presented.
type MenuOpenListener interface {
	ContainerMenuOpened(menu *Menu)
}
