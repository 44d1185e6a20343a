package globalconf

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"

	"github.com/openxroad/adminapi/model"
)

// LoadFile parses a directory snapshot from the JSON document distributed by
// the configuration source. The document's schema is owned by that source,
// so parsing is field-by-field and tolerant of extra content:
//
//	{
//	  "instance_identifiers": ["INST", ...],
//	  "members": [
//	    {"xroad_instance": "INST", "member_class": "CLASS", "member_code": "CODE",
//	     "name": "Display Name", "subsystems": ["SUB", ...]},
//	    ...
//	  ],
//	  "global_groups": [
//	    {"xroad_instance": "INST", "group_code": "CODE", "description": "..."},
//	    ...
//	  ]
//	}
//
// Entries missing mandatory fields are collected into one error; a snapshot
// with bad entries is rejected whole rather than installed partially.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrDirectoryUnavailable, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed snapshot document", model.ErrDirectoryUnavailable)
	}
	doc := gjson.ParseBytes(data)

	snapshot := &Snapshot{}
	var invalid *multierror.Error

	doc.Get("instance_identifiers").ForEach(func(_, value gjson.Result) bool {
		snapshot.Instances = append(snapshot.Instances, value.String())
		return true
	})

	doc.Get("members").ForEach(func(_, member gjson.Result) bool {
		instance := member.Get("xroad_instance").String()
		memberClass := member.Get("member_class").String()
		memberCode := member.Get("member_code").String()
		name := member.Get("name").String()
		if instance == "" || memberClass == "" || memberCode == "" {
			invalid = multierror.Append(invalid, fmt.Errorf("member entry %s lacks identity fields", member.Raw))
			return true
		}
		snapshot.Members = append(snapshot.Members, MemberInfo{
			ID:   model.MemberID(instance, memberClass, memberCode),
			Name: name,
		})
		member.Get("subsystems").ForEach(func(_, sub gjson.Result) bool {
			snapshot.Members = append(snapshot.Members, MemberInfo{
				ID:   model.SubsystemID(instance, memberClass, memberCode, sub.String()),
				Name: name,
			})
			return true
		})
		return true
	})

	doc.Get("global_groups").ForEach(func(_, group gjson.Result) bool {
		instance := group.Get("xroad_instance").String()
		groupCode := group.Get("group_code").String()
		if instance == "" || groupCode == "" {
			invalid = multierror.Append(invalid, fmt.Errorf("global group entry %s lacks identity fields", group.Raw))
			return true
		}
		snapshot.Groups = append(snapshot.Groups, GlobalGroupInfo{
			ID:          model.GlobalGroupID(instance, groupCode),
			Description: group.Get("description").String(),
		})
		return true
	})

	if err := invalid.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrDirectoryUnavailable, err)
	}

	snapshot.Build()
	return snapshot, nil
}
