package internal

import (
	"fmt"
	"os"
	"os/user"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/rs/zerolog/log"
)

const envPrefix = "SITE_IMAGES_"

func ShowVersion() {
	log.Info().Str("version", versioninfo.Short()).Msg("site-images")
}

// EnvironmentVars logs the variables this tool reads, at debug level.
func EnvironmentVars() {
	environ := os.Environ()
	sort.Strings(environ)

	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if strings.HasPrefix(kv[0], envPrefix) || kv[0] == "LOG_LEVEL" {
			log.Debug().Str("name", kv[0]).Str("value", kv[1]).Msg("environment")
		}
	}
}

// UserInfo logs who the process runs as, which matters when outputs end up
// owned by the wrong user.
func UserInfo() {
	log.Debug().Int("pid", os.Getpid()).Msg("process")
	currentUser, err := user.Current()
	if err != nil {
		log.Debug().Err(err).Msg("error getting current user")
	} else {
		log.Debug().Str("uid", currentUser.Uid).Str("username", currentUser.Username).Str("gid", currentUser.Gid).Msg("user")
	}
	groups, err := os.Getgroups()
	if err != nil {
		log.Debug().Err(err).Msg("error getting groups")
		return
	}
	groupNames := make([]string, 0, len(groups))
	for _, gid := range groups {
		group, err := user.LookupGroupId(strconv.Itoa(gid))
		if err != nil {
			groupNames = append(groupNames, strconv.Itoa(gid))
		} else {
			groupNames = append(groupNames, fmt.Sprintf("%s(%s)", group.Name, group.Gid))
		}
	}
	log.Debug().Strs("groups", groupNames).Msg("groups")
}
