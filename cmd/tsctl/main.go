/*
Copyright © 2025 tsctl authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/homelab-ops/tsctl/pkg/cli"

func main() {
	cli.Execute()
}
