/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package board implements the split-pane layout core of Study Bench: a
// rectangular region recursively divided into column/row splits whose leaves
// each hold an ordered, tabbed set of content panes.
//
// The package is deliberately free of any rendering concern. It maintains the
// node tree (root/binary/leaf), serializes the topology to a compact token
// descriptor and the split ratios to a float vector, computes the canonical
// leaf order used for next/previous navigation, and builds the hierarchical
// address menu used to move or duplicate pane content across containers.
// The Manager facade orchestrates mutations and dispatches lifecycle events
// to registered listeners.
//
// Structural mutations are serialized by a per-Manager mutex. Listener
// dispatch is synchronous and ordered; listeners must not call back into
// mutating Manager methods from inside a notification.
package board
